package recipe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderMarkdown converts a recipe into CommonMark. Titles and subtitles map
// to headings, quotes to block quotes, ingredients to a bullet list and steps
// to an ordered list. Consecutive ingredients or steps share one list.
func RenderMarkdown(r *Recipe) []byte {
	var buf bytes.Buffer
	prev := Kind(0)
	step := 0

	for _, el := range r.Elements() {
		if prev != 0 && !(el.Kind == prev && (el.Kind == Ingredient || el.Kind == Step)) {
			buf.WriteByte('\n')
		}
		if el.Kind != Step {
			step = 0
		}

		switch el.Kind {
		case Title:
			fmt.Fprintf(&buf, "# %s\n", el.Text)
		case Subtitle:
			fmt.Fprintf(&buf, "## %s\n", el.Text)
		case Quote:
			fmt.Fprintf(&buf, "> %s\n", el.Text)
		case Note:
			fmt.Fprintf(&buf, "*%s*\n", el.Text)
		case Ingredient:
			fmt.Fprintf(&buf, "- %s\n", ingredientLabel(el))
		case Step:
			step++
			fmt.Fprintf(&buf, "%d. %s\n", step, el.Text)
		}
		prev = el.Kind
	}
	return buf.Bytes()
}

func ingredientLabel(el Element) string {
	var details []string
	if el.Note != nil {
		details = append(details, *el.Note)
	}
	if el.Guide != nil {
		details = append(details, *el.Guide)
	}
	if len(details) == 0 {
		return el.Text
	}
	return el.Text + " (" + strings.Join(details, ", ") + ")"
}

// RenderHTML renders the recipe through goldmark with GFM enabled. Raw HTML
// in recipe text is escaped.
func RenderHTML(r *Recipe) ([]byte, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := engine.Convert(RenderMarkdown(r), &buf); err != nil {
		return nil, fmt.Errorf("recipe render %s: %w", r.Path(), err)
	}
	return buf.Bytes(), nil
}
