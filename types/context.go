package types

import "time"

// Context entry source types mirror the database enum.
const (
	SourceWhatsApp = "WhatsApp"
	SourceEmail    = "Email"
	SourceNote     = "Note"
)

// ContextEntry is a free-form note the user captured from some channel.
// Insights are opaque structured annotations; the synthesis pipeline reads
// them but never writes them.
type ContextEntry struct {
	ID         string         `json:"id,omitempty"`
	UserID     string         `json:"user_id"`
	Content    string         `json:"content"`
	SourceType string         `json:"source_type"`
	Insights   map[string]any `json:"insights"`
	CreatedAt  time.Time      `json:"created_at,omitempty"`
}

// ContextSnapshot is the projection of a context entry handed to the LLM.
type ContextSnapshot struct {
	Content    string         `json:"content"`
	SourceType string         `json:"source_type"`
	Insights   map[string]any `json:"insights"`
	RecordedAt time.Time      `json:"recorded_at"`
}

type ContextResponse struct {
	Success      bool         `json:"success"`
	Context      ContextEntry `json:"context,omitempty"`
	ErrorMessage string       `json:"error,omitempty"`
}

type GetContextsResponse struct {
	Success      bool           `json:"success"`
	Contexts     []ContextEntry `json:"contexts"`
	Total        int            `json:"total"`
	Limit        int            `json:"limit,omitempty"`
	Offset       int            `json:"offset,omitempty"`
	ErrorMessage string         `json:"error,omitempty"`
}

type DeleteContextResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ProcessContextsResponse is the result of the context-to-task synthesis
// endpoint. Zero created tasks is a success, not an error.
type ProcessContextsResponse struct {
	Success      bool   `json:"success"`
	CreatedCount int    `json:"created_count"`
	CreatedTasks []Task `json:"created_tasks"`
	ErrorMessage string `json:"error,omitempty"`
}
