package supabase

import (
	"encoding/json"
	"fmt"

	"tasknest/backend/types"

	"github.com/supabase-community/postgrest-go"
)

func (s *Store) GetCategories(userID string) ([]types.Category, error) {
	resp, _, err := s.client.From("categories").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("usage_count", &postgrest.OrderOpts{Ascending: false}).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := []types.Category{}
	if err := json.Unmarshal(resp, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode category data: %w", err)
	}
	return categories, nil
}

// GetOrCreateCategory resolves a category name to a row, creating it on
// first use. Creation goes through an upsert on (user_id, name) so two
// near-simultaneous creations of the same name cannot both insert; the
// usage count bump on the existing-row path is best effort.
func (s *Store) GetOrCreateCategory(userID, name string) (types.Category, error) {
	resp, _, err := s.client.From("categories").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("name", name).
		Execute()
	if err != nil {
		return types.Category{}, fmt.Errorf("failed to look up category: %w", err)
	}

	var existing []types.Category
	if err := json.Unmarshal(resp, &existing); err != nil {
		return types.Category{}, fmt.Errorf("failed to decode category data: %w", err)
	}

	if len(existing) > 0 {
		category := existing[0]
		_, _, err := s.client.From("categories").
			Update(map[string]interface{}{"usage_count": category.UsageCount + 1}, "", "").
			Eq("id", category.ID).
			Execute()
		if err != nil {
			return category, nil // stale count is acceptable
		}
		category.UsageCount++
		return category, nil
	}

	payload := map[string]interface{}{
		"user_id":     userID,
		"name":        name,
		"usage_count": 1,
	}
	resp, _, err = s.client.From("categories").
		Upsert(payload, "user_id,name", "representation", "").
		Execute()
	if err != nil {
		return types.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	var created []types.Category
	if err := json.Unmarshal(resp, &created); err != nil {
		return types.Category{}, fmt.Errorf("failed to decode created category: %w", err)
	}
	if len(created) == 0 {
		return types.Category{}, fmt.Errorf("category upsert returned no row")
	}
	return created[0], nil
}
