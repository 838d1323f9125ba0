package types

import "time"

// Task statuses and priority labels mirror the database enums.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Task struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	CategoryID    *string    `json:"category_id,omitempty"`
	PriorityScore int        `json:"priority_score"`
	PriorityLabel string     `json:"priority_label,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitempty"`
}

// TaskInput is the client-facing creation payload. The category is a plain
// name resolved to a category_id at creation time, and priority_score is
// never accepted from the client.
type TaskInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	PriorityLabel string  `json:"priority_label"`
	Deadline      *string `json:"deadline"`
	Status        string  `json:"status"`
}

// TaskDraft is an LLM-proposed task. It has no identity until it passes
// validation and is persisted as a real Task.
type TaskDraft struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	PriorityLabel string  `json:"priority_label"`
	Deadline      *string `json:"deadline"`
}

// TaskSnapshot is a point-in-time projection of an active task, used only
// as LLM context.
type TaskSnapshot struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
}

type TaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}

type DeleteTaskResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
}

type GetTasksResponse struct {
	Success      bool   `json:"success"`
	Tasks        []Task `json:"tasks"`
	Total        int    `json:"total"`
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type GetSingleTaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type TaskStats struct {
	TotalTasks        int `json:"total_tasks"`
	PendingTasks      int `json:"pending_tasks"`
	InProgressTasks   int `json:"in_progress_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	HighPriorityTasks int `json:"high_priority_tasks"`
}

type TaskStatsResponse struct {
	Success      bool      `json:"success"`
	Stats        TaskStats `json:"stats,omitempty"`
	ErrorMessage string    `json:"error,omitempty"`
}
