package stats

import (
	"context"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/internal/recipe"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// RecipeWalker yields parsed recipes one at a time. *recipe.Loader satisfies it.
type RecipeWalker interface {
	Walk(ctx context.Context, dir string, opts recipe.LoadParams, fn func(*recipe.Recipe) error) error
}

// Aggregator collects ingredient text from every recipe a walker yields.
type Aggregator struct {
	walker RecipeWalker
	logger interfaces.Logger
}

// NewAggregator binds an aggregator to a recipe walker.
func NewAggregator(walker RecipeWalker, logger interfaces.Logger) *Aggregator {
	return &Aggregator{
		walker: walker,
		logger: logging.Ensure(logger),
	}
}

// Collect walks dir and returns the ingredient texts of every recipe found.
// Any parse or read failure aborts the walk and no partial collection is
// returned.
func (a *Aggregator) Collect(ctx context.Context, dir string, opts recipe.LoadParams) (*Collection, error) {
	collection := &Collection{}
	logger := a.logger.WithContext(ctx)

	err := a.walker.Walk(ctx, dir, opts, func(r *recipe.Recipe) error {
		collection.Visit(r.Path())
		found := 0
		for ingredient := range r.Ingredients() {
			collection.Add(ingredient.Text)
			found++
		}
		logging.WithRecipeContext(logger, r.Path(), "collect").Debug("stats.collect.recipe", "ingredients", found)
		return nil
	})
	if err != nil {
		logger.Error("stats.collect.failed", "dir", dir, "error", err)
		return nil, err
	}

	logger.Info("stats.collect.completed",
		"dir", dir,
		"files", len(collection.files),
		"occurrences", collection.Len(),
	)
	return collection, nil
}
