package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the structured error payload returned by every endpoint.
type ErrorResponse struct {
	// Error message
	// example: message not found
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
