package recipescmd

import (
	"errors"

	"github.com/goliatone/go-recipestats/internal/commands"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterRecipeCommands.
type HandlerSet struct {
	Count *CountIngredientsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	countHandlerOpts []commands.HandlerOption[CountIngredientsCommand]
	sink             ResultSink
}

// WithCountHandlerOptions forwards options to the CountIngredientsHandler constructor.
func WithCountHandlerOptions(opts ...commands.HandlerOption[CountIngredientsCommand]) Option {
	return func(cfg *options) {
		cfg.countHandlerOpts = append(cfg.countHandlerOpts, opts...)
	}
}

// WithResultSink sets the callback receiving successful counts.
func WithResultSink(sink ResultSink) Option {
	return func(cfg *options) {
		cfg.sink = sink
	}
}

// RegisterRecipeCommands builds the recipe command handlers and registers them
// with reg when one is supplied.
func RegisterRecipeCommands(reg CommandRegistry, service interfaces.IngredientStats, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("recipe command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "recipes")
	countHandler := NewCountIngredientsHandler(service, logger, cfg.sink, cfg.countHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(countHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Count: countHandler}, nil
}
