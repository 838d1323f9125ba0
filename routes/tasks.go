package routes

import (
	"net/http"

	"tasknest/backend/handlers"
)

// RegisterTaskRoutes registers all task-related routes
func RegisterTaskRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /tasks/create", h.CreateTask)
	mux.HandleFunc("PATCH /tasks/update", h.UpdateTask)
	mux.HandleFunc("PATCH /tasks/status", h.UpdateTaskStatus)
	mux.HandleFunc("DELETE /tasks/delete", h.DeleteTask)
	mux.HandleFunc("GET /tasks", h.GetTasks)
	mux.HandleFunc("GET /tasks/stats", h.TaskStats)
	mux.HandleFunc("GET /task", h.GetSingleTask)
}
