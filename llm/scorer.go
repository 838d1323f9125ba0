package llm

import (
	"context"
	"time"

	"tasknest/backend/config"
	"tasknest/backend/types"
)

const (
	scoreTemperature = 0.1
	scoreMaxTokens   = 256
	scoreTimeout     = 20 * time.Second

	// How many active tasks are shown to the model as scoring context.
	scoreContextTasks = 10
)

// TaskSource provides the active-task context for scoring.
type TaskSource interface {
	ActiveTasksByScore(userID string, limit int) ([]types.Task, error)
}

// Scorer computes a 1-100 priority score for a candidate task. It never
// fails: any upstream or extraction error resolves to a static score keyed
// by the candidate's priority label.
type Scorer struct {
	llm   Completer
	tasks TaskSource
}

func NewScorer(completer Completer, tasks TaskSource) *Scorer {
	return &Scorer{llm: completer, tasks: tasks}
}

func (s *Scorer) Score(ctx context.Context, candidate types.TaskInput, userID string) int {
	active, err := s.tasks.ActiveTasksByScore(userID, scoreContextTasks)
	if err != nil {
		// Scoring still works without context, just with less signal.
		config.Logger.Warn("Failed to fetch active tasks for scoring:", err)
	}

	prompt := BuildScorePrompt(candidate, active)

	raw, err := s.llm.Complete(ctx, prompt, GenerationParams{
		Temperature: scoreTemperature,
		MaxTokens:   scoreMaxTokens,
		Timeout:     scoreTimeout,
	})
	if err != nil {
		config.Logger.Errorf("LLM call failed, using fallback score: %v", err)
		return fallbackScore(candidate.PriorityLabel)
	}

	score, err := ExtractScore(raw)
	if err != nil {
		config.Logger.Errorf("Could not parse score from LLM response, using fallback: %v", err)
		return fallbackScore(candidate.PriorityLabel)
	}

	return clampScore(score)
}

func fallbackScore(priorityLabel string) int {
	switch priorityLabel {
	case types.PriorityHigh:
		return 85
	case types.PriorityMedium:
		return 50
	case types.PriorityLow:
		return 15
	default:
		return 50
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}
