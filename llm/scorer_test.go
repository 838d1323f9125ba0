package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"tasknest/backend/types"
)

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
	params   []GenerationParams
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, params GenerationParams) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.params = append(f.params, params)
	return f.response, f.err
}

type fakeTaskSource struct {
	tasks []types.Task
	calls int
}

func (f *fakeTaskSource) ActiveTasksByScore(userID string, limit int) ([]types.Task, error) {
	f.calls++
	return f.tasks, nil
}

func TestScorer_UsesModelScore(t *testing.T) {
	completer := &fakeCompleter{response: `{"score": 73}`}
	scorer := NewScorer(completer, &fakeTaskSource{})

	got := scorer.Score(context.Background(), types.TaskInput{Title: "Pay rent"}, "user-1")
	if got != 73 {
		t.Fatalf("score = %d, want 73", got)
	}

	if len(completer.params) != 1 {
		t.Fatalf("expected one completion call, got %d", len(completer.params))
	}
	p := completer.params[0]
	if p.Temperature != 0.1 || p.MaxTokens != 256 || p.Timeout != scoreTimeout {
		t.Errorf("unexpected generation params: %+v", p)
	}
}

func TestScorer_FallbackOnUpstreamFailure(t *testing.T) {
	upstreamErrors := []error{
		fmt.Errorf("%w: dial tcp refused", ErrUpstreamUnavailable),
		fmt.Errorf("%w: API returned status 500", ErrUpstreamError),
		fmt.Errorf("%w: no choices returned", ErrMalformedResponse),
	}

	cases := []struct {
		label string
		want  int
	}{
		{types.PriorityHigh, 85},
		{types.PriorityMedium, 50},
		{types.PriorityLow, 15},
		{"", 50},
		{"Whatever", 50},
	}

	for _, upstreamErr := range upstreamErrors {
		for _, tc := range cases {
			completer := &fakeCompleter{err: upstreamErr}
			scorer := NewScorer(completer, &fakeTaskSource{})

			got := scorer.Score(context.Background(), types.TaskInput{Title: "t", PriorityLabel: tc.label}, "user-1")
			if got != tc.want {
				t.Errorf("label %q with %v: score = %d, want %d", tc.label, upstreamErr, got, tc.want)
			}
		}
	}
}

func TestScorer_FallbackOnExtractionFailure(t *testing.T) {
	completer := &fakeCompleter{response: "I cannot help with that."}
	scorer := NewScorer(completer, &fakeTaskSource{})

	got := scorer.Score(context.Background(), types.TaskInput{Title: "t", PriorityLabel: types.PriorityHigh}, "user-1")
	if got != 85 {
		t.Fatalf("score = %d, want 85", got)
	}
}

func TestScorer_ClampsOutOfRangeScores(t *testing.T) {
	completer := &fakeCompleter{response: "definitely a 150"}
	scorer := NewScorer(completer, &fakeTaskSource{})

	if got := scorer.Score(context.Background(), types.TaskInput{Title: "t"}, "user-1"); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}

	completer.response = `{"score": 0}`
	if got := scorer.Score(context.Background(), types.TaskInput{Title: "t"}, "user-1"); got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
}

func TestScorer_PromptEmbedsCandidateAndActiveTasks(t *testing.T) {
	deadline := "2024-08-01T17:00:00Z"
	completer := &fakeCompleter{response: `{"score": 50}`}
	source := &fakeTaskSource{tasks: []types.Task{
		{Title: "Pay rent", PriorityLabel: types.PriorityHigh, PriorityScore: 90},
	}}
	scorer := NewScorer(completer, source)

	scorer.Score(context.Background(), types.TaskInput{
		Title:         "Book dentist",
		Description:   "Routine checkup",
		PriorityLabel: types.PriorityMedium,
		Deadline:      &deadline,
	}, "user-1")

	if source.calls != 1 {
		t.Fatalf("expected one active-task fetch, got %d", source.calls)
	}
	prompt := completer.prompts[0]
	for _, want := range []string{
		`- Title: "Pay rent", Priority: High, Current Score: 90`,
		"Title: Book dentist",
		"Description: Routine checkup",
		"User-Assigned Priority: Medium",
		"Deadline: " + deadline,
		`"score"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestScorer_PromptPlaceholders(t *testing.T) {
	completer := &fakeCompleter{response: `{"score": 50}`}
	scorer := NewScorer(completer, &fakeTaskSource{})

	scorer.Score(context.Background(), types.TaskInput{Title: "Plain"}, "user-1")

	prompt := completer.prompts[0]
	for _, want := range []string{
		"The user has no other active tasks.",
		"Description: No description.",
		"User-Assigned Priority: Not set.",
		"Deadline: No deadline.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
