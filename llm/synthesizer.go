package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tasknest/backend/cache"
	"tasknest/backend/config"
	"tasknest/backend/types"
)

const (
	synthesisTemperature = 0.2
	synthesisMaxTokens   = 1024
	synthesisTimeout     = 45 * time.Second

	// How many of the most recent context entries are analyzed per run.
	recentContextLimit = 20
)

// SnapshotSource provides the authoritative data behind the read-through
// cache: a user's active tasks and most recent context entries.
type SnapshotSource interface {
	ActiveTaskSnapshots(userID string) ([]types.TaskSnapshot, error)
	RecentContextSnapshots(userID string, limit int) ([]types.ContextSnapshot, error)
}

// Synthesizer turns a user's unstructured context entries into task drafts.
// Unlike the scorer there is no safe default output, so upstream and
// extraction failures propagate to the caller.
type Synthesizer struct {
	llm    Completer
	source SnapshotSource
	cache  cache.Store
	now    func() time.Time
}

func NewSynthesizer(completer Completer, source SnapshotSource, store cache.Store) *Synthesizer {
	return &Synthesizer{
		llm:    completer,
		source: source,
		cache:  store,
		now:    time.Now,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, userID string) ([]types.TaskDraft, error) {
	tasksJSON, err := s.cachedSnapshot(ctx, cache.TasksProcessingKey(userID), func() (any, error) {
		return s.source.ActiveTaskSnapshots(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks snapshot: %w", err)
	}

	contextsJSON, err := s.cachedSnapshot(ctx, cache.ContextsProcessingKey(userID), func() (any, error) {
		return s.source.RecentContextSnapshots(userID, recentContextLimit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load contexts snapshot: %w", err)
	}

	prompt := BuildSynthesisPrompt(s.now(), tasksJSON, contextsJSON)

	raw, err := s.llm.Complete(ctx, prompt, GenerationParams{
		Temperature: synthesisTemperature,
		MaxTokens:   synthesisMaxTokens,
		Timeout:     synthesisTimeout,
	})
	if err != nil {
		return nil, err
	}
	config.Logger.Debugf("LLM raw response for task generation: %s", raw)

	return ExtractTaskArray(raw)
}

// cachedSnapshot is the read-through path: a hit returns the cached JSON
// text as-is; a miss queries the authoritative source, serializes it, and
// populates the cache with the standard TTL. Cache backend failures are
// treated as misses.
func (s *Synthesizer) cachedSnapshot(ctx context.Context, key string, load func() (any, error)) (string, error) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		config.Logger.Warnf("Cache read failed for %s, falling through to database: %v", key, err)
	} else if ok {
		config.Logger.Infof("CACHE HIT for %s. Using cached data.", key)
		return cached, nil
	} else {
		config.Logger.Infof("CACHE MISS for %s. Querying database.", key)
	}

	value, err := load()
	if err != nil {
		return "", err
	}

	serialized, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, string(serialized), cache.DefaultTTL); err != nil {
		config.Logger.Warnf("Cache write failed for %s: %v", key, err)
	}

	return string(serialized), nil
}
