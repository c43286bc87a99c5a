package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-recipestats/cmd/internal/bootstrap"
	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/internal/recipe"
	"github.com/goliatone/go-recipestats/internal/runtimeconfig"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

type stubIngredientStats struct {
	calls  int
	dir    string
	result *interfaces.CountResult
	err    error
}

func (s *stubIngredientStats) CountIngredients(_ context.Context, dir string, _ interfaces.CountOptions) (*interfaces.CountResult, error) {
	s.calls++
	s.dir = dir
	return s.result, s.err
}

func stubBuilders(t *testing.T, svc interfaces.IngredientStats) {
	t.Helper()
	originalLoader, originalBuilder := configLoader, moduleBuilder
	t.Cleanup(func() {
		configLoader, moduleBuilder = originalLoader, originalBuilder
	})

	configLoader = func(...string) (runtimeconfig.Config, error) {
		return runtimeconfig.DefaultConfig(), nil
	}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: svc,
			Logger:  logging.NoOp(),
		}, nil
	}
}

func TestRunPrintsCountsFromCommandHandler(t *testing.T) {
	svc := &stubIngredientStats{result: &interfaces.CountResult{
		Counts: []interfaces.IngredientCount{{Text: "flour", Count: 3}, {Text: "sugar", Count: 1}},
	}}
	stubBuilders(t, svc)

	var out bytes.Buffer
	if err := run(context.Background(), &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if svc.calls != 1 || svc.dir != "." {
		t.Fatalf("expected one count over the working directory, got calls=%d dir=%q", svc.calls, svc.dir)
	}
	if out.String() != "flour: 3\nsugar: 1\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	svc := &stubIngredientStats{err: errors.New("line 3: ingredient line must have 3 pipe-delimited fields, got 2")}
	stubBuilders(t, svc)

	var out bytes.Buffer
	if err := run(context.Background(), &out); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}
}

func TestRunReportsConfigErrors(t *testing.T) {
	stubBuilders(t, &stubIngredientStats{})
	configLoader = func(...string) (runtimeconfig.Config, error) {
		return runtimeconfig.Config{}, runtimeconfig.ErrRecipesDirRequired
	}

	if err := run(context.Background(), &bytes.Buffer{}); !errors.Is(err, runtimeconfig.ErrRecipesDirRequired) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("cake.recipe", "# Cake\n- flour|2 cups|\n- flour|1 tbsp|dusting\n- sugar|1 cup|\nBake.\n")
	write("sub/bread.recipe", "# Bread\n- flour|500 g|\n- eggs|2|\n")

	originalLoader := configLoader
	t.Cleanup(func() { configLoader = originalLoader })
	configLoader = func(...string) (runtimeconfig.Config, error) {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Recipes.Dir = dir
		return cfg, nil
	}

	var out bytes.Buffer
	if err := run(context.Background(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || lines[0] != "flour: 3" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if !strings.Contains(out.String(), "sugar: 1\n") || !strings.Contains(out.String(), "eggs: 1\n") {
		t.Fatalf("missing counts in %q", out.String())
	}

	write("sub/broken.recipe", "- flour|2 cups\n")
	out.Reset()
	err := run(context.Background(), &out)
	if !recipe.IsMalformedLine(err) {
		t.Fatalf("expected malformed line error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no partial output, got %q", out.String())
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	originalLoader := configLoader
	t.Cleanup(func() { configLoader = originalLoader })
	configLoader = func(...string) (runtimeconfig.Config, error) {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Recipes.Dir = dir
		return cfg, nil
	}

	var out bytes.Buffer
	if err := run(context.Background(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}
}
