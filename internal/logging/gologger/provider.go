package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// Config holds the go-logger settings taken from runtimeconfig.LoggingConfig.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]glog.Option{
	"":        glog.WithLoggerTypeJSON(),
	"json":    glog.WithLoggerTypeJSON(),
	"console": glog.WithLoggerTypeConsole(),
	"pretty":  glog.WithLoggerTypePretty(),
}

// Provider hands out go-logger children keyed by module name.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root go-logger. An empty format selects JSON; any
// format outside json, console and pretty is an error.
func NewProvider(cfg Config) (*Provider, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(opts...)
	if focus := compact(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func (cfg Config) options() ([]glog.Option, error) {
	format, ok := formats[key(cfg.Format)]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	opts := []glog.Option{format}
	if level := normalizeLevel(cfg.Level); level != "" {
		opts = append(opts, glog.WithLevel(level))
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}
	return opts, nil
}

// GetLogger returns the root logger for an empty name and a named child
// otherwise. A nil provider yields a no-op logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return wrap(p.root.GetLogger(name))
	}
	return wrap(p.root)
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

// WithFields prefers go-logger's map form and falls back to With pairs in
// key order. The caller's map is never retained.
func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	switch inner := a.inner.(type) {
	case glog.FieldsLogger:
		return wrap(inner.WithFields(maps.Clone(fields)))
	case interface{ With(...any) *glog.BaseLogger }:
		return wrap(inner.With(pairs(fields)...))
	default:
		return a
	}
}

// WithContext binds ctx and applies fields stored by logging.ContextWithFields.
func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return logging.WithFields(wrap(a.inner.WithContext(ctx)), logging.ContextFields(ctx))
}

func pairs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, k, fields[k])
	}
	return out
}

// normalizeLevel maps a configured level onto go-logger's names. Unknown
// levels return "" and leave go-logger's default in place.
func normalizeLevel(level string) string {
	return levels[key(level)]
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
