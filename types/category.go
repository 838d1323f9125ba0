package types

import "time"

type Category struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type CategoryResponse struct {
	Success      bool     `json:"success"`
	Category     Category `json:"category,omitempty"`
	ErrorMessage string   `json:"error,omitempty"`
}

type GetCategoriesResponse struct {
	Success      bool       `json:"success"`
	Categories   []Category `json:"categories"`
	ErrorMessage string     `json:"error,omitempty"`
}
