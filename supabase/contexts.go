package supabase

import (
	"encoding/json"
	"fmt"

	"tasknest/backend/types"

	"github.com/supabase-community/postgrest-go"
)

func (s *Store) InsertContext(entry types.ContextEntry) (types.ContextEntry, error) {
	if entry.Insights == nil {
		entry.Insights = map[string]any{}
	}

	payload := map[string]interface{}{
		"user_id":     entry.UserID,
		"content":     entry.Content,
		"source_type": entry.SourceType,
		"insights":    entry.Insights,
	}

	resp, _, err := s.client.From("context_entries").
		Insert(payload, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.ContextEntry{}, fmt.Errorf("failed to insert context entry: %w", err)
	}

	var created []types.ContextEntry
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.ContextEntry{}, fmt.Errorf("failed to decode inserted context entry: %w", err)
	}
	if len(created) == 0 {
		return types.ContextEntry{}, fmt.Errorf("insert returned no context entry")
	}
	return created[0], nil
}

// ContextFilter narrows a context list query.
type ContextFilter struct {
	SourceType string
	Search     string
	Limit      int
	Offset     int
}

func (s *Store) GetContexts(userID string, filter ContextFilter) ([]types.ContextEntry, int64, error) {
	query := s.client.From("context_entries").
		Select("*", "exact", false).
		Eq("user_id", userID)

	if filter.SourceType != "" {
		query = query.Eq("source_type", filter.SourceType)
	}
	if filter.Search != "" {
		query = query.Ilike("content", fmt.Sprintf("%%%s%%", filter.Search))
	}

	query = query.Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if filter.Limit > 0 {
		query = query.Range(filter.Offset, filter.Offset+filter.Limit-1, "")
	}

	resp, total, err := query.Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch context entries: %w", err)
	}

	contexts := []types.ContextEntry{}
	if err := json.Unmarshal(resp, &contexts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode context entries: %w", err)
	}
	return contexts, total, nil
}

func (s *Store) DeleteContext(userID, contextID string) error {
	_, _, err := s.client.From("context_entries").
		Delete("", "").
		Eq("id", contextID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete context entry: %w", err)
	}
	return nil
}

// RecentContextSnapshots projects the newest context entries down to the
// fields the synthesis prompt needs.
func (s *Store) RecentContextSnapshots(userID string, limit int) ([]types.ContextSnapshot, error) {
	resp, _, err := s.client.From("context_entries").
		Select("content, source_type, insights, created_at", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch context snapshots: %w", err)
	}

	var entries []types.ContextEntry
	if err := json.Unmarshal(resp, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode context snapshots: %w", err)
	}

	snapshots := make([]types.ContextSnapshot, 0, len(entries))
	for _, entry := range entries {
		snapshots = append(snapshots, types.ContextSnapshot{
			Content:    entry.Content,
			SourceType: entry.SourceType,
			Insights:   entry.Insights,
			RecordedAt: entry.CreatedAt,
		})
	}
	return snapshots, nil
}
