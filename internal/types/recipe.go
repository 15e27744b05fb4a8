package types

import "time"

// StructuredRecipe is the normalized recipe record returned to API callers.
// Every field is populated after parsing: the lists are never nil and the
// single-line fields carry explicit defaults when the completion omitted them.
type StructuredRecipe struct {
	Title        string     `json:"title"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	CookingTime  string     `json:"cooking_time"`
	Difficulty   string     `json:"difficulty"`
	Notes        string     `json:"notes"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}
