package models

// SuggestionParams describes the user's current situation. It is independent
// of any stored item's tags and is only consumed by the AI suggestion path.
type SuggestionParams struct {
	Mood    string `json:"mood"`
	Budget  string `json:"budget"`
	Weather string `json:"weather"`
}

// SuggestionResult is what both the random and the AI paths hand back to the
// caller. Item is nil only when the category holds no items at all.
type SuggestionResult struct {
	Item   *Item  `json:"item"`
	Reason string `json:"reason"`
}
