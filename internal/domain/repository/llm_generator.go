package repository

import (
	"context"
)

// TextGenerator sends a prompt to a generative text model and returns the
// model's raw reply. Implementations do not inspect the reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// Provider names the backend for logs, metrics and health output.
	Provider() string
	Model() string
}
