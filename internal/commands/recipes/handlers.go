package recipescmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-recipestats/internal/commands"
	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

const countOperation = "recipes.count_ingredients"

// ErrServiceRequired is returned when a handler is built without an ingredient service.
var ErrServiceRequired = errors.New("recipes command: ingredient service is nil")

var _ command.Commander[CountIngredientsCommand] = (*CountIngredientsHandler)(nil)

// ResultSink receives the counts produced by a successful run. Returning an
// error fails the command.
type ResultSink func(ctx context.Context, result *interfaces.CountResult) error

// CountIngredientsHandler runs the ingredient count through the shared command handler.
type CountIngredientsHandler struct {
	inner *commands.Handler[CountIngredientsCommand]
}

// NewCountIngredientsHandler binds a handler to the ingredient service. The
// sink may be nil when only the logged summary is wanted.
func NewCountIngredientsHandler(service interfaces.IngredientStats, logger interfaces.Logger, sink ResultSink, opts ...commands.HandlerOption[CountIngredientsCommand]) *CountIngredientsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CountIngredientsCommand) error {
		if service == nil {
			return ErrServiceRequired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.CountIngredients(ctx, msg.Directory, interfaces.CountOptions{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"file_count":       len(result.Files),
			"occurrence_count": result.Occurrences,
			"distinct_count":   len(result.Counts),
		}).Info("recipes.command.count_ingredients.completed")

		if sink == nil {
			return nil
		}
		return sink(ctx, result)
	}

	handlerOpts := []commands.HandlerOption[CountIngredientsCommand]{
		commands.WithLogger[CountIngredientsCommand](baseLogger),
		commands.WithTimeout[CountIngredientsCommand](0),
		commands.WithOperation[CountIngredientsCommand](countOperation),
		commands.WithMessageFields(func(msg CountIngredientsCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CountIngredientsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CountIngredientsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CountIngredientsCommand].
func (h *CountIngredientsHandler) Execute(ctx context.Context, msg CountIngredientsCommand) error {
	return h.inner.Execute(ctx, msg)
}
