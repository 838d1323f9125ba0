package routes

import (
	"net/http"

	"tasknest/backend/handlers"
)

// RegisterContextRoutes registers context-entry routes, including the
// public context-to-task processing trigger.
func RegisterContextRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /contexts/create", h.CreateContext)
	mux.HandleFunc("GET /contexts", h.GetContexts)
	mux.HandleFunc("DELETE /contexts/delete", h.DeleteContext)
	mux.HandleFunc("POST /contexts/process/{user_id}", h.ProcessContexts)
}
