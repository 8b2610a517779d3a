package services

import (
	"math/rand"

	"github.com/vothaan/chongi/internal/models"
)

// Picker selects one item uniformly at random. Every element has probability
// 1/n; no weighting by recency, mood, or anything else. Invocations are
// independent, so back-to-back repeats are legitimate.
type Picker struct{}

func NewPicker() *Picker {
	return &Picker{}
}

// Pick returns a uniformly chosen item, or nil for empty input. It never
// fails; the caller decides how to present an empty pick.
func (p *Picker) Pick(items []models.Item) *models.Item {
	if len(items) == 0 {
		return nil
	}
	return &items[rand.Intn(len(items))]
}
