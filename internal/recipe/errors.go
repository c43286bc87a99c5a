package recipe

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeMalformedIngredient tags ingredient lines that do not split into
	// exactly three pipe-delimited fields.
	TextCodeMalformedIngredient = "RECIPE_MALFORMED_INGREDIENT"
	// TextCodeReadFailed tags recipe files that could not be opened or read.
	TextCodeReadFailed = "RECIPE_READ_FAILED"
)

func malformedIngredientError(line string, fields int) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("ingredient line must have %d pipe-delimited fields, got %d", ingredientFields, fields),
		goerrors.CategoryValidation,
	).
		WithTextCode(TextCodeMalformedIngredient).
		WithMetadata(map[string]any{
			"fields": fields,
			"text":   line,
		})
}

func readError(err error, path string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("read recipe %s", path)).
		WithTextCode(TextCodeReadFailed).
		WithMetadata(map[string]any{"path": path})
}

// IsMalformedLine reports whether err originates from an ingredient line
// with the wrong number of fields.
func IsMalformedLine(err error) bool {
	return hasTextCode(err, TextCodeMalformedIngredient)
}

// IsReadError reports whether err originates from opening or reading a
// recipe file.
func IsReadError(err error) bool {
	return hasTextCode(err, TextCodeReadFailed)
}

func hasTextCode(err error, code string) bool {
	e := asRecipeError(err)
	return e != nil && e.TextCode == code
}

func asRecipeError(err error) *goerrors.Error {
	var e *goerrors.Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
