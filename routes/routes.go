package routes

import (
	"net/http"

	"tasknest/backend/handlers"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.Handler) {
	RegisterTaskRoutes(mux, h)
	RegisterContextRoutes(mux, h)
	RegisterCategoryRoutes(mux, h)
}
