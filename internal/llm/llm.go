// Package llm wraps the Gemini text model behind a small interface so the
// generation pipeline can be tested without network access.
package llm

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

// TextGenerator produces model output for a system instruction and prompt.
// GenerateJSON constrains the response to the given schema and returns the
// raw JSON bytes; GenerateText returns free-form text (markdown allowed).
type TextGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) ([]byte, error)
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}
