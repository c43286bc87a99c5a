package recipescmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const countIngredientsMessageType = "recipes.count_ingredients"

// CountIngredientsCommand asks for the ingredient frequency table of every
// recipe file under Directory.
type CountIngredientsCommand struct {
	// Directory selects the tree to scan, relative to the service base path.
	Directory string `json:"directory"`
	// Pattern overrides the file glob configured on the service.
	Pattern string `json:"pattern,omitempty"`
	// Recursive overrides whether sub-directories are scanned.
	Recursive *bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (CountIngredientsCommand) Type() string { return countIngredientsMessageType }

// Validate ensures the directory is present and the pattern is a usable glob.
func (cmd CountIngredientsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("recipes.count_ingredients.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := strings.TrimSpace(value.(string))
			if pattern == "" {
				return nil
			}
			if _, err := path.Match(pattern, ""); err != nil {
				return validation.NewError("recipes.count_ingredients.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}
