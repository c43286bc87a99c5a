package stats

import (
	"context"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/internal/recipe"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// Config controls how the service discovers recipe files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
}

// Service implements interfaces.IngredientStats for filesystem-backed recipes.
type Service struct {
	aggregator *Aggregator
}

var _ interfaces.IngredientStats = (*Service)(nil)

// NewService roots a recipe loader at cfg.BasePath and wires an aggregator
// over it. A nil provider disables logging.
func NewService(cfg Config, provider interfaces.LoggerProvider) (*Service, error) {
	loader, err := recipe.NewDirLoader(recipe.LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Logger:    logging.ParserLogger(provider),
	})
	if err != nil {
		return nil, err
	}
	return NewServiceWithWalker(loader, provider), nil
}

// NewServiceWithWalker builds a service over an existing walker.
func NewServiceWithWalker(walker RecipeWalker, provider interfaces.LoggerProvider) *Service {
	return &Service{
		aggregator: NewAggregator(walker, logging.StatsLogger(provider)),
	}
}

// CountIngredients collects every ingredient under dir and returns the value
// counts sorted by descending count.
func (s *Service) CountIngredients(ctx context.Context, dir string, opts interfaces.CountOptions) (*interfaces.CountResult, error) {
	collection, err := s.aggregator.Collect(ctx, dir, recipe.LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}
	return &interfaces.CountResult{
		Files:       collection.Files(),
		Occurrences: collection.Len(),
		Counts:      collection.Counts(),
	}, nil
}
