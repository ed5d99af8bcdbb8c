package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/LegendaryTyan/VKR/internal/progression"
)

type gameStartResponse struct {
	SessionID string    `json:"sessionId"`
	GameID    string    `json:"gameId"`
	StartedAt time.Time `json:"startedAt"`
}

type gameCompleteRequest struct {
	Score int `json:"score"`
}

type gameCompleteResponse struct {
	XPEarned int                 `json:"xpEarned"`
	Events   []progression.Event `json:"events"`
	Profile  interface{}         `json:"profile"`
}

func (s *Server) handleGameList(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.content.Games.All())
}

func (s *Server) handleGameStart(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	if _, ok := s.content.Games.ByID(gameID); !ok {
		respondError(w, http.StatusNotFound, "unknown game")
		return
	}

	respondData(w, gameStartResponse{
		SessionID: uuid.NewString(),
		GameID:    gameID,
		StartedAt: time.Now().UTC(),
	})
}

// handleGameComplete is the producer boundary: a mini-game reports a
// completion score in [0,100] and the engine converts it to XP via
// round(baseXP * score / 100), then applies the grant and the completion.
func (s *Server) handleGameComplete(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	game, ok := s.content.Games.ByID(gameID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown game")
		return
	}

	var req gameCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score < 0 || req.Score > 100 {
		respondError(w, http.StatusBadRequest, "score must be between 0 and 100")
		return
	}

	earned := int(math.Round(float64(game.XP) * float64(req.Score) / 100))
	events := s.progress.AddXP(earned)
	events = append(events, s.progress.CompleteGame(gameID)...)

	respondData(w, gameCompleteResponse{
		XPEarned: earned,
		Events:   events,
		Profile:  s.progress.Record(),
	})
}
