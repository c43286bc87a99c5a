package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// Event returns the log event name emitted for the status.
func (s TelemetryStatus) Event() string {
	switch s {
	case TelemetryStatusSuccess:
		return "command.execute.success"
	case TelemetryStatusContextError:
		return "command.execute.context_error"
	default:
		return "command.execute.failed"
	}
}

// TelemetryInfo is handed to telemetry callbacks once a command finishes.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	// Logger already carries Fields and the execution context.
	Logger interfaces.Logger
}

// Telemetry is called after every execution that passed validation.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// classify maps the raw execution result onto a status and the categorised
// error returned to the caller.
func classify(ctx context.Context, err error) (TelemetryStatus, error) {
	switch {
	case err != nil:
		return TelemetryStatusFailed, wrapExecuteError(err)
	case ctx.Err() != nil:
		return TelemetryStatusContextError, wrapContextError(ctx.Err())
	default:
		return TelemetryStatusSuccess, nil
	}
}

// logOutcome writes the status event with timing to logger.
func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds(), "status", string(info.Status)}
	if info.Status == TelemetryStatusSuccess {
		logger.Info(info.Status.Event(), args...)
		return
	}
	logger.Error(info.Status.Event(), append(args, "error", info.Error)...)
}

// DefaultTelemetry logs outcomes through logger instead of the handler's own
// logger. Fields and context from the execution are applied to it.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	base := EnsureLogger(logger)
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := base
		if fl, ok := entry.(interfaces.FieldsLogger); ok && len(info.Fields) > 0 {
			entry = fl.WithFields(info.Fields)
		}
		logOutcome(entry.WithContext(ctx), info)
	}
}
