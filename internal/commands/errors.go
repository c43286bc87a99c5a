package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// tag wraps err with a category and text code. Errors that already carry a
// go-errors category (recipe parse and read failures) pass through so callers
// can still match on their original codes.
func tag(err error, category goerrors.Category, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tag(err, goerrors.CategoryValidation, commandValidationCode, "command validation failed")
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tag(err, goerrors.CategoryCommand, commandContextCanceled, "command execution cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, goerrors.CategoryCommand, commandContextTimeout, "command execution deadline exceeded")
	default:
		return tag(err, goerrors.CategoryCommand, commandContextErrorCode, "command context error")
	}
}

func wrapExecuteError(err error) error {
	return tag(err, goerrors.CategoryCommand, commandExecuteFailed, "command execution failed")
}
