package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tasknest/backend/cache"
	"tasknest/backend/types"

	miniredis "github.com/alicebob/miniredis/v2"
)

type fakeSnapshotSource struct {
	tasks        []types.TaskSnapshot
	contexts     []types.ContextSnapshot
	taskCalls    int
	contextCalls int
}

func (f *fakeSnapshotSource) ActiveTaskSnapshots(userID string) ([]types.TaskSnapshot, error) {
	f.taskCalls++
	return f.tasks, nil
}

func (f *fakeSnapshotSource) RecentContextSnapshots(userID string, limit int) ([]types.ContextSnapshot, error) {
	f.contextCalls++
	return f.contexts, nil
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, cache.Store) {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(s.Close)
	return s, cache.NewRedisStore(s.Addr())
}

func dentistFixture() *fakeSnapshotSource {
	return &fakeSnapshotSource{
		tasks: []types.TaskSnapshot{
			{Title: "Pay rent", Status: types.StatusPending},
		},
		contexts: []types.ContextSnapshot{
			{Content: "Meeting with dentist this Saturday", SourceType: types.SourceNote},
		},
	}
}

func TestSynthesizer_PromptEmbedsDateAndSnapshots(t *testing.T) {
	_, store := newTestCache(t)
	source := dentistFixture()
	completer := &fakeCompleter{
		response: `[{"title":"Dentist appointment","description":"Meeting with dentist","category":"Health","priority_label":"Medium","deadline":"2024-07-05T17:00:00Z"}]`,
	}

	synth := NewSynthesizer(completer, source, store)
	// Friday, July 4th 2024: "this Saturday" must resolve to July 5th.
	synth.now = func() time.Time { return time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC) }

	drafts, err := synth.Synthesize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	prompt := completer.prompts[0]
	for _, want := range []string{
		"Today's Date: Friday, 04/07/2024",
		"Pay rent",
		"Meeting with dentist this Saturday",
		"nearest upcoming",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	p := completer.params[0]
	if p.Temperature != 0.2 || p.MaxTokens != 1024 || p.Timeout != synthesisTimeout {
		t.Errorf("unexpected generation params: %+v", p)
	}

	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].Title != "Dentist appointment" {
		t.Errorf("title = %q", drafts[0].Title)
	}
	if drafts[0].Deadline == nil || *drafts[0].Deadline != "2024-07-05T17:00:00Z" {
		t.Errorf("deadline = %v", drafts[0].Deadline)
	}
}

func TestSynthesizer_WarmCacheSkipsDatabase(t *testing.T) {
	_, store := newTestCache(t)
	source := dentistFixture()
	completer := &fakeCompleter{response: "[]"}

	synth := NewSynthesizer(completer, source, store)

	if _, err := synth.Synthesize(context.Background(), "user-1"); err != nil {
		t.Fatalf("first Synthesize: %v", err)
	}
	if source.taskCalls != 1 || source.contextCalls != 1 {
		t.Fatalf("cold run should query each snapshot once: tasks=%d contexts=%d", source.taskCalls, source.contextCalls)
	}

	if _, err := synth.Synthesize(context.Background(), "user-1"); err != nil {
		t.Fatalf("second Synthesize: %v", err)
	}
	if source.taskCalls != 1 || source.contextCalls != 1 {
		t.Fatalf("warm run must not re-query: tasks=%d contexts=%d", source.taskCalls, source.contextCalls)
	}

	// Both runs see the same serialized snapshots.
	if completer.prompts[0] != completer.prompts[1] {
		t.Error("warm-cache prompt differs from cold-cache prompt")
	}
}

func TestSynthesizer_InvalidationForcesRequery(t *testing.T) {
	_, store := newTestCache(t)
	source := dentistFixture()
	completer := &fakeCompleter{response: "[]"}

	synth := NewSynthesizer(completer, source, store)
	ctx := context.Background()

	if _, err := synth.Synthesize(ctx, "user-1"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// A task write for user-1 must invalidate only that user's task snapshot.
	cache.InvalidateUserTasks(ctx, store, "user-1")

	if _, err := synth.Synthesize(ctx, "user-1"); err != nil {
		t.Fatalf("Synthesize after invalidation: %v", err)
	}
	if source.taskCalls != 2 {
		t.Errorf("task snapshot should be re-queried after invalidation, calls=%d", source.taskCalls)
	}
	if source.contextCalls != 1 {
		t.Errorf("context snapshot should still be cached, calls=%d", source.contextCalls)
	}
}

func TestSynthesizer_CacheIsolatedPerUser(t *testing.T) {
	_, store := newTestCache(t)
	ctx := context.Background()

	first := dentistFixture()
	synthA := NewSynthesizer(&fakeCompleter{response: "[]"}, first, store)
	if _, err := synthA.Synthesize(ctx, "user-a"); err != nil {
		t.Fatalf("Synthesize user-a: %v", err)
	}

	cache.InvalidateUserTasks(ctx, store, "user-b")

	if _, err := synthA.Synthesize(ctx, "user-a"); err != nil {
		t.Fatalf("Synthesize user-a again: %v", err)
	}
	if first.taskCalls != 1 {
		t.Errorf("user-a cache should be unaffected by user-b invalidation, calls=%d", first.taskCalls)
	}
}

func TestSynthesizer_UpstreamFailurePropagates(t *testing.T) {
	_, store := newTestCache(t)
	completer := &fakeCompleter{err: fmt.Errorf("%w: status 502", ErrUpstreamError)}

	synth := NewSynthesizer(completer, dentistFixture(), store)
	_, err := synth.Synthesize(context.Background(), "user-1")
	if !errors.Is(err, ErrUpstreamError) {
		t.Fatalf("expected ErrUpstreamError, got %v", err)
	}
}

func TestSynthesizer_ExtractionFailurePropagates(t *testing.T) {
	_, store := newTestCache(t)
	completer := &fakeCompleter{response: `[not valid json]`}

	synth := NewSynthesizer(completer, dentistFixture(), store)
	_, err := synth.Synthesize(context.Background(), "user-1")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestSynthesizer_NoSuggestionsIsSuccess(t *testing.T) {
	_, store := newTestCache(t)
	completer := &fakeCompleter{response: "No new tasks are needed."}

	synth := NewSynthesizer(completer, dentistFixture(), store)
	drafts, err := synth.Synthesize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(drafts) != 0 {
		t.Fatalf("expected no drafts, got %+v", drafts)
	}
}

func TestSynthesizer_CacheUnreachableFallsThrough(t *testing.T) {
	srv, store := newTestCache(t)
	srv.Close() // cache backend down before first use

	source := dentistFixture()
	completer := &fakeCompleter{response: "[]"}

	synth := NewSynthesizer(completer, source, store)
	if _, err := synth.Synthesize(context.Background(), "user-1"); err != nil {
		t.Fatalf("cache failure must degrade to a miss, got %v", err)
	}
	if source.taskCalls != 1 || source.contextCalls != 1 {
		t.Fatalf("authoritative store should be queried: tasks=%d contexts=%d", source.taskCalls, source.contextCalls)
	}
}
