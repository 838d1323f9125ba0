package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tasknest/backend/cache"
	"tasknest/backend/config"
	"tasknest/backend/supabase"
	"tasknest/backend/types"
)

func (h *Handler) CreateContext(w http.ResponseWriter, r *http.Request) {
	var entry types.ContextEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		config.Logger.Error("Failed to decode context JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if entry.Content == "" {
		writeError(w, "Missing content", http.StatusBadRequest)
		return
	}
	switch entry.SourceType {
	case types.SourceWhatsApp, types.SourceEmail, types.SourceNote:
	default:
		writeError(w, "Invalid source_type", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entry.UserID = userID
	created, err := store.InsertContext(entry)
	if err != nil {
		config.Logger.Error("Failed to save context entry:", err)
		writeError(w, "Failed to create context entry", http.StatusInternalServerError)
		return
	}

	cache.InvalidateUserContexts(r.Context(), h.Cache, userID)

	writeJSON(w, http.StatusCreated, types.ContextResponse{
		Success: true,
		Context: created,
	})
}

func (h *Handler) GetContexts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 20 // default
	offset := 0
	var err error

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeError(w, "Invalid limit value", http.StatusBadRequest)
			return
		}
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			writeError(w, "Invalid offset value", http.StatusBadRequest)
			return
		}
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cacheKey := cache.ContextListKey(userID, q)
	if cached, ok, err := h.Cache.Get(r.Context(), cacheKey); err == nil && ok {
		config.Logger.Infof("CACHE HIT for context list: %s", cacheKey)
		writeRawJSON(w, http.StatusOK, cached)
		return
	}
	config.Logger.Infof("CACHE MISS for context list: %s. Querying database.", cacheKey)

	contexts, total, err := store.GetContexts(userID, supabase.ContextFilter{
		SourceType: q.Get("source_type"),
		Search:     q.Get("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		config.Logger.Error("Failed to fetch context entries:", err)
		writeError(w, "Failed to fetch context entries", http.StatusInternalServerError)
		return
	}

	response := types.GetContextsResponse{
		Success:  true,
		Contexts: contexts,
		Total:    int(total),
		Limit:    limit,
		Offset:   offset,
	}

	if body, err := json.Marshal(response); err == nil {
		if err := h.Cache.Set(r.Context(), cacheKey, string(body), cache.DefaultTTL); err != nil {
			config.Logger.Warn("Failed to cache context list:", err)
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) DeleteContext(w http.ResponseWriter, r *http.Request) {
	contextID := r.URL.Query().Get("id")
	if contextID == "" {
		writeError(w, "Missing context ID", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := store.DeleteContext(userID, contextID); err != nil {
		config.Logger.Error("Failed to delete context entry:", err)
		writeError(w, "Could not delete context entry", http.StatusInternalServerError)
		return
	}

	cache.InvalidateUserContexts(r.Context(), h.Cache, userID)

	writeJSON(w, http.StatusOK, types.DeleteContextResponse{
		Success: true,
		Message: "Context entry deleted successfully",
	})
}
