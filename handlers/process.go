package handlers

import (
	"net/http"

	"tasknest/backend/config"
	"tasknest/backend/llm"
	"tasknest/backend/supabase"
	"tasknest/backend/types"

	"github.com/google/uuid"
)

// ProcessContexts scans a user's recent context entries against their
// existing tasks and creates any new actionable tasks the model proposes.
// The endpoint is public and takes the target user id in the path, so it
// runs on the service-role store.
func (h *Handler) ProcessContexts(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		writeError(w, "Invalid user ID format.", http.StatusBadRequest)
		return
	}

	store := supabase.ServiceStore()
	synthesizer := llm.NewSynthesizer(h.LLM, store, h.Cache)

	drafts, err := synthesizer.Synthesize(r.Context(), userID)
	if err != nil {
		config.Logger.Error("Failed to process contexts with AI:", err)
		writeError(w, "Failed to communicate with the AI model.", http.StatusInternalServerError)
		return
	}

	// Per-draft failures skip that draft only; the batch never aborts.
	service := h.taskService(store)
	createdTasks := []types.Task{}
	for _, draft := range drafts {
		task, err := service.CreateFromDraft(r.Context(), userID, draft)
		if err != nil {
			config.Logger.Warnf("AI suggested an invalid task (%q): %v", draft.Title, err)
			continue
		}
		createdTasks = append(createdTasks, task)
	}

	writeJSON(w, http.StatusCreated, types.ProcessContextsResponse{
		Success:      true,
		CreatedCount: len(createdTasks),
		CreatedTasks: createdTasks,
	})
}
