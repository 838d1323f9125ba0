package handlers

import (
	"encoding/json"
	"net/http"

	"tasknest/backend/cache"
	"tasknest/backend/llm"
)

// Handler carries the process-wide capabilities; per-request data access is
// built from the caller's bearer token.
type Handler struct {
	Cache cache.Store
	LLM   llm.Completer
}

func New(cacheStore cache.Store, completer llm.Completer) *Handler {
	return &Handler{Cache: cacheStore, LLM: completer}
}

type errorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeRawJSON replays an already-serialized response body (cached lists).
func writeRawJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{
		Success:      false,
		ErrorMessage: message,
	})
}
