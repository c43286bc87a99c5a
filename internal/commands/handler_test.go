package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

type testMessage struct {
	Directory string
}

func (testMessage) Type() string { return "recipes.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "recipes.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

type entry struct {
	level   string
	message string
	args    []any
	fields  map[string]any
}

type captureLogger struct {
	mu      *sync.Mutex
	entries *[]entry
	fields  map[string]any
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{mu: &sync.Mutex{}, entries: &[]entry{}}
}

func (c *captureLogger) record(level, msg string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.entries = append(*c.entries, entry{level: level, message: msg, args: args, fields: c.fields})
}

func (c *captureLogger) Trace(msg string, args ...any) { c.record("trace", msg, args) }
func (c *captureLogger) Debug(msg string, args ...any) { c.record("debug", msg, args) }
func (c *captureLogger) Info(msg string, args ...any)  { c.record("info", msg, args) }
func (c *captureLogger) Warn(msg string, args ...any)  { c.record("warn", msg, args) }
func (c *captureLogger) Error(msg string, args ...any) { c.record("error", msg, args) }
func (c *captureLogger) Fatal(msg string, args ...any) { c.record("fatal", msg, args) }

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(c.fields)+len(fields))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &captureLogger{mu: c.mu, entries: c.entries, fields: merged}
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger { return c }

func (c *captureLogger) find(message string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range *c.entries {
		if e.message == message {
			return e, true
		}
	}
	return entry{}, false
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, execErr) {
		t.Fatalf("expected original error to be reachable, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	execErr := goerrors.New("bad ingredient", goerrors.CategoryValidation).WithTextCode("RECIPE_MALFORMED_INGREDIENT")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerRunsWithoutDeadlineByDefault(t *testing.T) {
	cases := map[string][]HandlerOption[testMessage]{
		"default":       nil,
		"zero timeout":  {WithTimeout[testMessage](0)},
		"reset timeout": {WithTimeout[testMessage](time.Second), WithTimeout[testMessage](-1)},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			hasDeadline := true
			h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
				_, hasDeadline = ctx.Deadline()
				return nil
			}, opts...)

			if err := h.Execute(context.Background(), testMessage{}); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if hasDeadline {
				t.Fatal("expected execution context without a deadline")
			}
		})
	}
}

func TestHandlerAcceptsNilContext(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			return errors.New("nil context")
		}
		return nil
	})
	if err := h.Execute(nil, testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestLogOutcomeIncludesStatusAndDuration(t *testing.T) {
	logger := newCaptureLogger()
	logOutcome(logger, TelemetryInfo{Status: TelemetryStatusContextError, Duration: 3 * time.Millisecond, Error: context.Canceled})

	got, ok := logger.find("command.execute.context_error")
	if !ok {
		t.Fatal("expected context_error entry")
	}
	if got.level != "error" {
		t.Fatalf("expected error level, got %s", got.level)
	}
	want := []any{"duration_ms", int64(3), "status", "context_error", "error", context.Canceled}
	if len(got.args) != len(want) {
		t.Fatalf("expected args %v, got %v", want, got.args)
	}
	for i := range want {
		if got.args[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], got.args[i])
		}
	}
}

func TestHandlerLogsMessageFields(t *testing.T) {
	logger := newCaptureLogger()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithLogger[testMessage](logger),
		WithOperation[testMessage]("recipes.count"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Directory: "cookbook"}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, ok := logger.find("command.execute.success")
	if !ok {
		t.Fatal("expected success entry")
	}
	if got.fields["directory"] != "cookbook" {
		t.Fatalf("expected directory field, got %v", got.fields)
	}
	if got.fields["operation"] != "recipes.count" {
		t.Fatalf("expected operation field, got %v", got.fields)
	}
	if got.fields["command"] != "recipes.test.message" {
		t.Fatalf("expected command field, got %v", got.fields)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var infos []TelemetryInfo
	telemetry := func(_ context.Context, _ testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}

	ok := NewHandler[testMessage](func(context.Context, testMessage) error { return nil },
		WithTelemetry[testMessage](telemetry))
	failing := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") },
		WithTelemetry[testMessage](telemetry))

	_ = ok.Execute(context.Background(), testMessage{})
	_ = failing.Execute(context.Background(), testMessage{})

	if len(infos) != 2 {
		t.Fatalf("expected 2 telemetry calls, got %d", len(infos))
	}
	if infos[0].Status != TelemetryStatusSuccess || infos[0].Error != nil {
		t.Fatalf("unexpected success info %+v", infos[0])
	}
	if infos[1].Status != TelemetryStatusFailed || infos[1].Error == nil {
		t.Fatalf("unexpected failure info %+v", infos[1])
	}
	if infos[1].Command != "recipes.test.message" {
		t.Fatalf("expected command type, got %q", infos[1].Command)
	}
}

func TestDefaultTelemetryLogsFailures(t *testing.T) {
	logger := newCaptureLogger()
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") },
		WithTelemetry(DefaultTelemetry[testMessage](logger)))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	got, ok := logger.find("command.execute.failed")
	if !ok {
		t.Fatal("expected failure entry")
	}
	if got.level != "error" {
		t.Fatalf("expected error level, got %s", got.level)
	}
	if got.fields["command"] != "recipes.test.message" {
		t.Fatalf("expected command field, got %v", got.fields)
	}
}

func TestNewHandlerPanicsOnNilFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewHandler[testMessage](nil)
}

func TestWrapContextErrorCodes(t *testing.T) {
	cases := map[error]string{
		context.Canceled:         commandContextCanceled,
		context.DeadlineExceeded: commandContextTimeout,
		errors.New("other"):      commandContextErrorCode,
	}
	for in, code := range cases {
		var e *goerrors.Error
		if !errors.As(wrapContextError(in), &e) {
			t.Fatalf("expected go-errors error for %v", in)
		}
		if e.TextCode != code {
			t.Fatalf("expected %s for %v, got %s", code, in, e.TextCode)
		}
	}
	if wrapContextError(nil) != nil {
		t.Fatal("expected nil passthrough")
	}
}
