package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget levels an item can be tagged with.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// ValidCategories is the fixed set of categories an item can belong to.
var ValidCategories = []string{"food", "drink", "nail", "hair", "hangout", "travel"}

// CategoryNames maps each category to its display name.
var CategoryNames = map[string]string{
	"food":    "Ăn gì?",
	"drink":   "Uống gì?",
	"nail":    "Mẫu Nail",
	"hair":    "Kiểu Tóc",
	"hangout": "Đi Chơi",
	"travel":  "Du Lịch",
}

// IsValidCategory reports whether category is one of ValidCategories.
func IsValidCategory(category string) bool {
	_, ok := CategoryNames[category]
	return ok
}

// Item is a single saved option inside one of a user's categories.
type Item struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Note      *string   `json:"note,omitempty"`
	Moods     []string  `json:"mood"`
	Budget    string    `json:"budget"`
	Weathers  []string  `json:"weather"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateItemParams carries the validated input for creating an item.
type CreateItemParams struct {
	UserID   uuid.UUID
	Category string
	Name     string
	Note     *string
	Moods    []string
	Budget   string
	Weathers []string
	ImageURL *string
}
