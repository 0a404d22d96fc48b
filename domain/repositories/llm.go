package repositories

import "context"

// TextGenerator abstracts the text-generation backend.
type TextGenerator interface {
	// GenerateText produces free-form text from a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateStructured produces text constrained to the chat response
	// schema. The schema is a hint to the backend, not a guarantee; the
	// caller still validates the result.
	GenerateStructured(ctx context.Context, prompt string) (string, error)
}
