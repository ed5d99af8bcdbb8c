package api

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the uniform JSON envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, APIResponse{Success: false, Error: msg})
}
