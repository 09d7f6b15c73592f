package output

import (
	"context"
	"encoding/json"
)

// LLMPort is the language model capability the pipeline depends on.
// GenerateStructured returns the reply as raw JSON, already cleaned of
// Markdown fences; callers unmarshal into their own schema.
type LLMPort interface {
	Name() string
	GenerateStructured(ctx context.Context, req StructuredRequest) (json.RawMessage, error)
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

type StructuredRequest struct {
	System     string
	Prompt     string
	SchemaName string
	// Schema is a textual field specification the adapter embeds in the
	// final prompt alongside native JSON response mode.
	Schema string
}

type TextRequest struct {
	System string
	Prompt string
}
