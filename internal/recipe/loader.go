package recipe

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// DefaultPattern selects recipe files by extension.
const DefaultPattern = "*.recipe"

// LoaderConfig configures how recipe files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory recipe paths are resolved against.
	BasePath string
	// Pattern limits discovered files to those matching the glob (defaults to "*.recipe").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	Logger    interfaces.Logger
}

// LoadParams provide call-specific overrides for pattern matching and recursion.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}

// Loader turns filesystem paths into parsed recipes.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	logger    interfaces.Logger
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		logger:    logger,
	}
}

// NewDirLoader roots a Loader at basePath on the host filesystem.
func NewDirLoader(cfg LoaderConfig) (*Loader, error) {
	basePath := cfg.BasePath
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, readError(err, basePath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("recipe loader: base path %s is not a directory", basePath)
	}
	cfg.BasePath = basePath
	return NewLoader(os.DirFS(basePath), cfg), nil
}

// LoadFile opens, parses and closes a single recipe file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Recipe, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	file, err := l.fs.Open(rel)
	if err != nil {
		return nil, readError(err, rel)
	}
	defer file.Close()

	recipe, err := Parse(rel, file)
	if err != nil {
		return nil, err
	}

	logging.WithRecipeContext(l.logger.WithContext(ctx), rel, "load").Debug("recipes.load.file", "elements", recipe.Len())
	return recipe, nil
}

// Walk discovers recipe files under dir and hands each parsed recipe to fn,
// one file at a time in lexical path order. Hidden files and directories
// below dir are skipped. The first error stops the walk.
func (l *Loader) Walk(ctx context.Context, dir string, opts LoadParams, fn func(*Recipe) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	return fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return readError(walkErr, path)
		}

		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return fs.SkipDir
			}
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) {
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if !l.matchesPattern(path, opts.Pattern) {
			return nil
		}

		recipe, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		return fn(recipe)
	})
}

// LoadDirectory discovers recipe files under dir and returns every parsed recipe.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*Recipe, error) {
	var recipes []*Recipe
	err := l.Walk(ctx, dir, opts, func(r *Recipe) error {
		recipes = append(recipes, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Path() < recipes[j].Path()
	})
	return recipes, nil
}

// isHidden reports dot-prefixed names such as .git or editor drafts.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// Without recursion only the root directory is walked.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		target = path
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ".", nil
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("recipe loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("recipe loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
