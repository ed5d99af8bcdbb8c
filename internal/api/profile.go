package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type renameRequest struct {
	DisplayName string `json:"displayName"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	respondData(w, s.progress.Record())
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		respondError(w, http.StatusBadRequest, "display name must not be empty")
		return
	}

	s.progress.SetDisplayName(req.DisplayName)
	respondData(w, s.progress.Record())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.progress.ResetProgress()
	respondData(w, s.progress.Record())
}
