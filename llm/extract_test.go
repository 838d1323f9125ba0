package llm

import (
	"errors"
	"testing"
)

func TestExtractScore(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"bare object", `{"score": 42}`, 42},
		{"object inside prose", `blah blah {"score": 7} trailing text`, 7},
		{"digit fallback", `the answer is 88`, 88},
		{"float score", `{"score": 66.0}`, 66},
		{"markdown fenced object", "```json\n{\"score\": 91}\n```", 91},
		{"broken object rescued by digits", `{"result": {"score": 12}}`, 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractScore(tc.raw)
			if err != nil {
				t.Fatalf("ExtractScore(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ExtractScore(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestExtractScore_NoNumber(t *testing.T) {
	_, err := ExtractScore("no numbers here")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractTaskArray(t *testing.T) {
	drafts, err := ExtractTaskArray(`[{"title":"A"}]`)
	if err != nil {
		t.Fatalf("ExtractTaskArray: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].Title != "A" {
		t.Errorf("title = %q, want %q", drafts[0].Title, "A")
	}
	if drafts[0].Description != "" || drafts[0].Category != "" || drafts[0].PriorityLabel != "" {
		t.Errorf("optional fields should default to empty: %+v", drafts[0])
	}
	if drafts[0].Deadline != nil {
		t.Errorf("deadline should default to nil, got %v", *drafts[0].Deadline)
	}
}

func TestExtractTaskArray_SurroundingProse(t *testing.T) {
	raw := "Sure! Here are the tasks:\n[{\"title\":\"Call plumber\",\"priority_label\":\"High\",\"deadline\":null}]\nLet me know if you need more."
	drafts, err := ExtractTaskArray(raw)
	if err != nil {
		t.Fatalf("ExtractTaskArray: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "Call plumber" {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}
	if drafts[0].PriorityLabel != "High" {
		t.Errorf("priority_label = %q, want High", drafts[0].PriorityLabel)
	}
}

func TestExtractTaskArray_NoArray(t *testing.T) {
	drafts, err := ExtractTaskArray("no array present")
	if err != nil {
		t.Fatalf("absence of suggestions should not be an error, got %v", err)
	}
	if len(drafts) != 0 {
		t.Fatalf("expected empty drafts, got %+v", drafts)
	}
}

func TestExtractTaskArray_BadJSON(t *testing.T) {
	_, err := ExtractTaskArray(`[{"title": broken]`)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}
