package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/content"
	"github.com/LegendaryTyan/VKR/internal/progression"
	"github.com/LegendaryTyan/VKR/internal/ws"
)

// Server exposes the progression engine over REST plus a WebSocket event
// stream. It holds no state of its own beyond the start time; all reads
// are store snapshots.
type Server struct {
	sessions  *auth.Store
	progress  *progression.Store
	content   *content.Content
	hub       *ws.Hub
	log       zerolog.Logger
	startedAt time.Time
}

func NewServer(sessions *auth.Store, progress *progression.Store, ct *content.Content, hub *ws.Hub, log zerolog.Logger) *Server {
	return &Server{
		sessions:  sessions,
		progress:  progress,
		content:   ct,
		hub:       hub,
		log:       log,
		startedAt: time.Now(),
	}
}

// Router builds the route table. Progression endpoints require a signed-in
// session; catalogs, health and the auth surface do not.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/clear-error", s.handleClearError).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)

	api.HandleFunc("/levels", s.handleLevels).Methods(http.MethodGet)
	api.HandleFunc("/games", s.handleGameList).Methods(http.MethodGet)
	api.HandleFunc("/achievements", s.handleAchievementList).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.Handle("/profile", s.requireSession(s.handleProfile)).Methods(http.MethodGet)
	api.Handle("/profile", s.requireSession(s.handleRename)).Methods(http.MethodPut)
	api.Handle("/profile/reset", s.requireSession(s.handleReset)).Methods(http.MethodPost)
	api.Handle("/games/{id}/start", s.requireSession(s.handleGameStart)).Methods(http.MethodPost)
	api.Handle("/games/{id}/complete", s.requireSession(s.handleGameComplete)).Methods(http.MethodPost)
	api.Handle("/achievements/earned", s.requireSession(s.handleEarnedAchievements)).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWS)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// requireSession rejects requests while no user is signed in. Progression
// data is meaningless without a bound identity.
func (s *Server) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.State().IsAuthenticated() {
			respondError(w, http.StatusUnauthorized, auth.ErrNotAuthenticated.Error())
			return
		}
		next(w, r)
	})
}
