package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// runContext returns the context a command executes under. A nil ctx falls
// back to context.Background; a deadline is only added when timeout is
// positive, so by default commands run to completion.
func runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns a usable logger, defaulting to a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.Ensure(logger)
}
