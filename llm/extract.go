package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"tasknest/backend/types"
)

// Models reliably emit the requested JSON somewhere in their output but
// unreliably emit only the JSON. Both extractors therefore locate the first
// bracket-delimited span and parse just that, ignoring surrounding prose.
var (
	objectSpanRegex = regexp.MustCompile(`(?s)\{.*?\}`)
	arraySpanRegex  = regexp.MustCompile(`(?s)\[.*?\]`)
	digitsRegex     = regexp.MustCompile(`\d+`)
)

// ExtractScore parses a priority score out of raw model text. It first
// tries the leading {...} span as a {"score": n} object, then falls back
// to the first run of digits anywhere in the text.
func ExtractScore(raw string) (int, error) {
	if span := objectSpanRegex.FindString(raw); span != "" {
		var payload struct {
			Score *json.Number `json:"score"`
		}
		if err := json.Unmarshal([]byte(span), &payload); err == nil && payload.Score != nil {
			if f, err := payload.Score.Float64(); err == nil {
				return int(f), nil
			}
		}
	}

	if digits := digitsRegex.FindString(raw); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n, nil
		}
	}

	return 0, fmt.Errorf("%w: no score found in %q", ErrExtractionFailed, raw)
}

// ExtractTaskArray parses task drafts out of raw model text. No bracketed
// span at all means the model suggested nothing, which is a valid outcome,
// not an error. A span that is present but unparseable is an extraction
// failure.
func ExtractTaskArray(raw string) ([]types.TaskDraft, error) {
	span := arraySpanRegex.FindString(raw)
	if span == "" {
		return []types.TaskDraft{}, nil
	}

	var drafts []types.TaskDraft
	if err := json.Unmarshal([]byte(span), &drafts); err != nil {
		return nil, fmt.Errorf("%w: invalid task array: %v", ErrExtractionFailed, err)
	}

	return drafts, nil
}
