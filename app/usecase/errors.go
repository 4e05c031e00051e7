package usecase

import (
	"fmt"
	"strings"

	"productdesc/internal/domain/entity"
)

// InvalidInputError carries the validated payload so the caller can render
// the marker-annotated copy.
type InvalidInputError struct {
	Input entity.ProductInput
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Input.InvalidFields(), ", ")
}

// GenerationError is returned once every generation attempt has failed.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("AI generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// OutputFormatError means the model replied with a parseable object that does
// not match the description schema.
type OutputFormatError struct {
	Reason error
}

func (e *OutputFormatError) Error() string {
	return "invalid output format: " + e.Reason.Error()
}

func (e *OutputFormatError) Unwrap() error { return e.Reason }
