package routes

import (
	"net/http"

	"tasknest/backend/handlers"
)

// RegisterCategoryRoutes registers category routes
func RegisterCategoryRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /categories", h.GetCategories)
	mux.HandleFunc("POST /categories/create", h.CreateCategory)
}
