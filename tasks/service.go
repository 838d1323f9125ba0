package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasknest/backend/cache"
	"tasknest/backend/config"
	"tasknest/backend/types"
)

// ErrValidation marks a payload that fails schema rules. Draft-processing
// callers skip these; the HTTP layer maps them to 400.
var ErrValidation = errors.New("invalid task payload")

const maxTitleLength = 255

// Store is the persistence surface task creation needs.
type Store interface {
	InsertTask(task types.Task) (types.Task, error)
	GetOrCreateCategory(userID, name string) (types.Category, error)
}

// Scorer computes the derived priority score. It never fails.
type Scorer interface {
	Score(ctx context.Context, candidate types.TaskInput, userID string) int
}

// Service owns task creation: validation, category resolution, priority
// scoring, persistence, cache invalidation. Both the HTTP create endpoint
// and the context synthesizer go through it.
type Service struct {
	store  Store
	scorer Scorer
	cache  cache.Store
}

func NewService(store Store, scorer Scorer, cacheStore cache.Store) *Service {
	return &Service{store: store, scorer: scorer, cache: cacheStore}
}

// Create validates the input, computes the priority score and persists the
// task. The score always resolves, so creation never fails because the AI
// is unreachable.
func (s *Service) Create(ctx context.Context, userID string, input types.TaskInput) (types.Task, error) {
	input, deadline, err := validate(input)
	if err != nil {
		return types.Task{}, err
	}

	now := time.Now()
	task := types.Task{
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		PriorityScore: s.scorer.Score(ctx, input, userID),
		PriorityLabel: input.PriorityLabel,
		Deadline:      deadline,
		Status:        input.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.Category != "" {
		category, err := s.store.GetOrCreateCategory(userID, input.Category)
		if err != nil {
			// A task without a category is still a valid task.
			config.Logger.Warn("Failed to resolve category, creating task without one:", err)
		} else {
			task.CategoryID = &category.ID
		}
	}

	created, err := s.store.InsertTask(task)
	if err != nil {
		return types.Task{}, err
	}

	cache.InvalidateUserTasks(ctx, s.cache, userID)
	return created, nil
}

// CreateFromDraft persists an LLM-proposed draft through the same
// validation and scoring path as a client-supplied task.
func (s *Service) CreateFromDraft(ctx context.Context, userID string, draft types.TaskDraft) (types.Task, error) {
	return s.Create(ctx, userID, types.TaskInput{
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		PriorityLabel: draft.PriorityLabel,
		Deadline:      draft.Deadline,
	})
}

func validate(input types.TaskInput) (types.TaskInput, *time.Time, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(input.Title) > maxTitleLength {
		return input, nil, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLength)
	}

	if input.Status == "" {
		input.Status = types.StatusPending
	}
	switch input.Status {
	case types.StatusPending, types.StatusInProgress, types.StatusCompleted:
	default:
		return input, nil, fmt.Errorf("%w: invalid status %q", ErrValidation, input.Status)
	}

	switch input.PriorityLabel {
	case "", types.PriorityLow, types.PriorityMedium, types.PriorityHigh:
	default:
		return input, nil, fmt.Errorf("%w: invalid priority_label %q", ErrValidation, input.PriorityLabel)
	}

	input.Category = strings.TrimSpace(input.Category)

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return input, nil, err
	}
	return input, deadline, nil
}

// parseDeadline accepts the formats the model is instructed to emit plus
// the common date-only shorthand.
func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid deadline %q", ErrValidation, value)
}
