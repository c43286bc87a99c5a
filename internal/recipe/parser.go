package recipe

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	titlePrefix      = "# "
	subtitlePrefix   = "## "
	quotePrefix      = "> "
	ingredientPrefix = "- "

	ingredientSeparator = "|"
	ingredientFields    = 3
)

// ParseLine classifies a single line without its terminator. The boolean is
// false only for an empty line; a whitespace-only line is a Step with empty
// text.
func ParseLine(line string) (Element, bool, error) {
	switch {
	case strings.HasPrefix(line, titlePrefix):
		return textElement(Title, line[len(titlePrefix):]), true, nil
	case strings.HasPrefix(line, subtitlePrefix):
		return textElement(Subtitle, line[len(subtitlePrefix):]), true, nil
	case strings.HasPrefix(line, quotePrefix):
		return textElement(Quote, line[len(quotePrefix):]), true, nil
	case strings.HasPrefix(line, ingredientPrefix):
		el, err := parseIngredient(line[len(ingredientPrefix):])
		if err != nil {
			return Element{}, false, err
		}
		return el, true, nil
	case line != "":
		return textElement(Step, line), true, nil
	default:
		return Element{}, false, nil
	}
}

func textElement(kind Kind, text string) Element {
	return Element{
		Kind: kind,
		Text: strings.TrimSpace(text),
	}
}

func parseIngredient(rest string) (Element, error) {
	parts := strings.Split(rest, ingredientSeparator)
	if len(parts) != ingredientFields {
		return Element{}, malformedIngredientError(rest, len(parts))
	}
	return Element{
		Kind:  Ingredient,
		Text:  strings.TrimSpace(parts[0]),
		Note:  optionalField(parts[1]),
		Guide: optionalField(parts[2]),
	}, nil
}

func optionalField(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseLines builds a Recipe from lines that have already been split. The
// first malformed ingredient line aborts parsing.
func ParseLines(path string, lines []string) (*Recipe, error) {
	elements := make([]Element, 0, len(lines))
	for i, line := range lines {
		el, ok, err := ParseLine(strings.TrimSuffix(line, "\r"))
		if err != nil {
			return nil, annotateLine(err, path, i+1)
		}
		if ok {
			elements = append(elements, el)
		}
	}
	return &Recipe{path: path, elements: elements}, nil
}

// Parse reads r line by line and builds a Recipe. Lines may be of any
// length. The path is only used to annotate the result and any error.
func Parse(path string, r io.Reader) (*Recipe, error) {
	br := bufio.NewReader(r)

	var elements []Element
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readError(readErr, path)
		}
		if raw == "" && readErr == io.EOF {
			break
		}

		lineNo++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		el, ok, err := ParseLine(line)
		if err != nil {
			return nil, annotateLine(err, path, lineNo)
		}
		if ok {
			elements = append(elements, el)
		}
		if readErr == io.EOF {
			break
		}
	}
	return &Recipe{path: path, elements: elements}, nil
}

func annotateLine(err error, path string, line int) error {
	fields := map[string]any{"line": line}
	if path != "" {
		fields["path"] = path
	}
	e := asRecipeError(err)
	if e == nil {
		return err
	}
	location := fmt.Sprintf("line %d", line)
	if path != "" {
		location = fmt.Sprintf("%s:%d", path, line)
	}
	e.Message = location + ": " + e.Message
	return e.WithMetadata(fields)
}
