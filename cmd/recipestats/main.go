package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/goliatone/go-recipestats/cmd/internal/bootstrap"
	recipescmd "github.com/goliatone/go-recipestats/internal/commands/recipes"
	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/internal/stats"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

var (
	configLoader  = bootstrap.LoadConfig
	moduleBuilder = bootstrap.BuildModule
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "recipestats: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := configLoader()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	module, err := moduleBuilder(bootstrap.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("ingredient service not configured")
	}

	handlers, err := recipescmd.RegisterRecipeCommands(nil, module.Service, module.Provider,
		recipescmd.WithResultSink(func(_ context.Context, result *interfaces.CountResult) error {
			return stats.Write(stdout, result.Counts)
		}),
	)
	if err != nil {
		return err
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": uuid.NewString()})
	return handlers.Count.Execute(ctx, recipescmd.CountIngredientsCommand{Directory: "."})
}
