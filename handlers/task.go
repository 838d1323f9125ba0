package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tasknest/backend/cache"
	"tasknest/backend/config"
	"tasknest/backend/llm"
	"tasknest/backend/supabase"
	"tasknest/backend/tasks"
	"tasknest/backend/types"

	"github.com/google/uuid"
)

func (h *Handler) taskService(store *supabase.Store) *tasks.Service {
	scorer := llm.NewScorer(h.LLM, store)
	return tasks.NewService(store, scorer, h.Cache)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input types.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		config.Logger.Error("Failed to decode task JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.taskService(store).Create(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, tasks.ErrValidation) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.Logger.Error("Failed to save task:", err)
		writeError(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.TaskResponse{
		Success: true,
		Task:    task,
	})
}

func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 20 // default
	offset := 0
	var err error

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			config.Logger.Error("Invalid limit value:", err)
			writeError(w, "Invalid limit value", http.StatusBadRequest)
			return
		}
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			config.Logger.Error("Invalid offset value:", err)
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

	cacheKey := cache.TaskListKey(userID, q)
	if cached, ok, err := h.Cache.Get(r.Context(), cacheKey); err == nil && ok {
		config.Logger.Infof("CACHE HIT for task list: %s", cacheKey)
		writeRawJSON(w, http.StatusOK, cached)
		return
	}
	config.Logger.Infof("CACHE MISS for task list: %s. Querying database.", cacheKey)

	taskList, total, err := store.GetTasks(userID, supabase.TaskFilter{
		Status:     q.Get("status"),
		Priority:   q.Get("priority"),
		CategoryID: q.Get("category_id"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		config.Logger.Error("Failed to fetch tasks:", err)
		writeError(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	response := types.GetTasksResponse{
		Success: true,
		Tasks:   taskList,
		Total:   int(total),
		Limit:   limit,
		Offset:  offset,
	}

	if body, err := json.Marshal(response); err == nil {
		if err := h.Cache.Set(r.Context(), cacheKey, string(body), cache.DefaultTTL); err != nil {
			config.Logger.Warn("Failed to cache task list:", err)
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetSingleTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := store.GetSingleTask(userID, taskID)
	if err != nil {
		config.Logger.Error("Failed to fetch task:", err)
		writeError(w, "Failed to fetch task", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetSingleTaskResponse{
		Success: true,
		Task:    task,
	})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(taskID); err != nil {
		config.Logger.Error("Invalid task ID format:", err)
		writeError(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || len(updates) == 0 {
		config.Logger.Error("Failed to decode update JSON:", err)
		writeError(w, "Invalid or empty update payload", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updatedTask, err := store.UpdateTask(userID, taskID, updates)
	if err != nil {
		config.Logger.Error("Failed to update task:", err)
		writeJSON(w, http.StatusInternalServerError, types.TaskResponse{
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return
	}

	cache.InvalidateUserTasks(r.Context(), h.Cache, userID)

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    updatedTask,
	})
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	switch payload.Status {
	case types.StatusPending, types.StatusInProgress, types.StatusCompleted:
	default:
		writeError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updatedTask, err := store.UpdateTask(userID, taskID, map[string]interface{}{"status": payload.Status})
	if err != nil {
		config.Logger.Error("Failed to update task status:", err)
		writeError(w, "Could not update task status", http.StatusInternalServerError)
		return
	}

	cache.InvalidateUserTasks(r.Context(), h.Cache, userID)

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    updatedTask,
	})
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := store.DeleteTask(userID, taskID); err != nil {
		config.Logger.Error("Failed to delete task:", err)
		writeError(w, "Could not delete task", http.StatusInternalServerError)
		return
	}

	cache.InvalidateUserTasks(r.Context(), h.Cache, userID)

	writeJSON(w, http.StatusOK, types.DeleteTaskResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	store, userID, err := supabase.StoreFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := store.TaskStats(userID)
	if err != nil {
		config.Logger.Error("Failed to fetch task stats:", err)
		writeError(w, "Failed to fetch task stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.TaskStatsResponse{
		Success: true,
		Stats:   stats,
	})
}
