package interfaces

import "context"

// IngredientStats exposes the ingredient frequency workflow over a tree of
// recipe files. Command handlers depend on this contract so hosts (and tests)
// can swap the filesystem-backed implementation.
type IngredientStats interface {
	// CountIngredients parses every recipe under dir and tallies ingredient
	// text across all of them.
	CountIngredients(ctx context.Context, dir string, opts CountOptions) (*CountResult, error)
}

// CountOptions provides call-specific overrides for recipe discovery. Zero
// values fall back to the service configuration.
type CountOptions struct {
	Pattern   string
	Recursive *bool
}

// IngredientCount is a single row of the value counts table.
type IngredientCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// CountResult carries the outcome of a counting run.
type CountResult struct {
	// Files lists the recipe paths visited, in walk order.
	Files []string `json:"files"`
	// Occurrences is the number of ingredient entries seen, duplicates included.
	Occurrences int `json:"occurrences"`
	// Counts is sorted by descending count.
	Counts []IngredientCount `json:"counts"`
}
