package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tasknest/backend/config"
	"tasknest/backend/supabase"
	"tasknest/backend/types"
)

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := store.GetCategories(userID)
	if err != nil {
		config.Logger.Error("Failed to fetch categories:", err)
		writeError(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetCategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeError(w, "Missing category name", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	category, err := store.GetOrCreateCategory(userID, name)
	if err != nil {
		config.Logger.Error("Failed to create category:", err)
		writeError(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.CategoryResponse{
		Success:  true,
		Category: category,
	})
}
