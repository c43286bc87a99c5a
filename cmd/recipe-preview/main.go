package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-recipestats/cmd/internal/bootstrap"
	"github.com/goliatone/go-recipestats/internal/recipe"
)

var (
	configLoader  = bootstrap.LoadConfig
	moduleBuilder = bootstrap.BuildModule
)

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("recipe preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("recipe-preview", flag.ContinueOnError)
	filePath := fs.String("file", "", "Recipe file to preview (relative to the recipe directory)")
	renderHTML := fs.Bool("html", false, "Render the recipe as HTML")
	renderMarkdown := fs.Bool("markdown", false, "Print the recipe as Markdown")
	asJSON := fs.Bool("json", false, "Print the parsed elements as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := configLoader()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	module, err := moduleBuilder(bootstrap.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Loader == nil {
		return fmt.Errorf("recipe loader not configured")
	}

	r, err := module.Loader.LoadFile(ctx, *filePath)
	if err != nil {
		return err
	}

	switch {
	case *renderHTML:
		body, err := recipe.RenderHTML(r)
		if err != nil {
			return err
		}
		_, err = stdout.Write(body)
		return err
	case *renderMarkdown:
		_, err := stdout.Write(recipe.RenderMarkdown(r))
		return err
	case *asJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Slice())
	default:
		return writeListing(stdout, r)
	}
}

func writeListing(w io.Writer, r *recipe.Recipe) error {
	fmt.Fprintf(w, "Path: %s\n", r.Path())
	if title, ok := r.Title(); ok {
		fmt.Fprintf(w, "Title: %s\n", title)
	}
	fmt.Fprintf(w, "Elements: %d\n\n", r.Len())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, el := range r.Elements() {
		if el.Kind == recipe.Ingredient {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, el.Kind, el.Text, el.NoteValue(), el.GuideValue())
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t\t\n", i+1, el.Kind, el.Text)
	}
	return tw.Flush()
}
