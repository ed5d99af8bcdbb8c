package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LegendaryTyan/VKR/internal/auth"
)

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Session auth.State  `json:"session"`
	Profile interface{} `json:"profile,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.sessions.Login(r.Context(), req.Username, req.Password, req.RememberMe)
	switch {
	case err == nil:
		respondData(w, loginResponse{Session: st, Profile: s.progress.Record()})
	case errors.Is(err, auth.ErrLoginInFlight):
		respondError(w, http.StatusConflict, "login already in progress")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, st.Error)
	default:
		s.log.Error().Err(err).Msg("login failed")
		respondError(w, http.StatusInternalServerError, "login failed")
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout()
	respondMessage(w, "logged out")
}

func (s *Server) handleClearError(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.sessions.ClearError())
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.sessions.State())
}
