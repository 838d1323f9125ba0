package supabase

import (
	"encoding/json"
	"fmt"

	"tasknest/backend/types"

	"github.com/supabase-community/postgrest-go"
)

var activeStatuses = []string{types.StatusPending, types.StatusInProgress}

// ActiveTasksByScore returns up to limit active tasks ordered by descending
// priority score. Used as scoring context.
func (s *Store) ActiveTasksByScore(userID string, limit int) ([]types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", activeStatuses).
		Order("priority_score", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active tasks: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, nil
}

// ActiveTaskSnapshots projects the user's active tasks down to the fields
// the synthesis prompt needs.
func (s *Store) ActiveTaskSnapshots(userID string) ([]types.TaskSnapshot, error) {
	resp, _, err := s.client.From("tasks").
		Select("title, description, status, deadline", "", false).
		Eq("user_id", userID).
		In("status", activeStatuses).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task snapshots: %w", err)
	}

	snapshots := []types.TaskSnapshot{}
	if err := json.Unmarshal(resp, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode task snapshots: %w", err)
	}
	return snapshots, nil
}

func (s *Store) InsertTask(task types.Task) (types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Insert([]types.Task{task}, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	var created []types.Task
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Task{}, fmt.Errorf("failed to decode inserted task: %w", err)
	}
	if len(created) == 0 {
		return types.Task{}, fmt.Errorf("insert returned no task")
	}
	return created[0], nil
}

// TaskFilter narrows and orders a task list query.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID string
	Search     string
	SortBy     string // created_at, updated_at, deadline, priority_score
	SortOrder  string // "asc" or "desc"
	Limit      int
	Offset     int
}

var taskSortColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"deadline":       true,
	"priority_score": true,
}

func (s *Store) GetTasks(userID string, filter TaskFilter) ([]types.Task, int64, error) {
	query := s.client.From("tasks").
		Select("*", "exact", false).
		Eq("user_id", userID)

	if filter.Status != "" {
		query = query.Eq("status", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Eq("priority_label", filter.Priority)
	}
	if filter.CategoryID != "" {
		query = query.Eq("category_id", filter.CategoryID)
	}
	if filter.Search != "" {
		query = query.Or(fmt.Sprintf("title.ilike.%%%s%%,description.ilike.%%%s%%", filter.Search, filter.Search), "")
	}

	sortBy := filter.SortBy
	if !taskSortColumns[sortBy] {
		sortBy = "created_at"
	}
	query = query.Order(sortBy, &postgrest.OrderOpts{Ascending: filter.SortOrder == "asc"})

	if filter.Limit > 0 {
		query = query.Range(filter.Offset, filter.Offset+filter.Limit-1, "")
	}

	resp, total, err := query.Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	tasks := []types.Task{}
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, total, nil
}

func (s *Store) GetSingleTask(userID, taskID string) (types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("id", taskID).
		Single().
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to fetch task: %w", err)
	}

	var task types.Task
	if err := json.Unmarshal(resp, &task); err != nil {
		return types.Task{}, fmt.Errorf("failed to decode task: %w", err)
	}
	return task, nil
}

func (s *Store) UpdateTask(userID, taskID string, updates map[string]interface{}) (types.Task, error) {
	// priority_score is derived at creation and immutable through updates.
	delete(updates, "priority_score")
	delete(updates, "user_id")
	delete(updates, "id")

	resp, _, err := s.client.From("tasks").
		Update(updates, "", "").
		Eq("id", taskID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	var updated []types.Task
	if err := json.Unmarshal(resp, &updated); err != nil {
		return types.Task{}, fmt.Errorf("failed to parse update result: %w", err)
	}
	if len(updated) == 0 {
		return types.Task{}, fmt.Errorf("no task found or updated")
	}
	return updated[0], nil
}

func (s *Store) DeleteTask(userID, taskID string) error {
	_, _, err := s.client.From("tasks").
		Delete("", "").
		Eq("id", taskID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// TaskStats aggregates dashboard counts client-side; a handful of rows per
// user makes a single fetch cheaper than five count queries.
func (s *Store) TaskStats(userID string) (types.TaskStats, error) {
	resp, _, err := s.client.From("tasks").
		Select("status, priority_label", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.TaskStats{}, fmt.Errorf("failed to fetch task stats: %w", err)
	}

	var rows []struct {
		Status        string `json:"status"`
		PriorityLabel string `json:"priority_label"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil {
		return types.TaskStats{}, fmt.Errorf("failed to decode task stats: %w", err)
	}

	stats := types.TaskStats{TotalTasks: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case types.StatusPending:
			stats.PendingTasks++
		case types.StatusInProgress:
			stats.InProgressTasks++
		case types.StatusCompleted:
			stats.CompletedTasks++
		}
		if row.PriorityLabel == types.PriorityHigh {
			stats.HighPriorityTasks++
		}
	}
	return stats, nil
}
