package llm

import (
	"errors"
	"strings"

	"ops-assistant/internal/application/port/output"
)

// ErrInvalidJSON reports a model reply that is not JSON at all, as
// opposed to JSON that fails schema validation downstream.
var ErrInvalidJSON = errors.New("model reply is not valid JSON")

// DefaultSystem is used when a request carries no system message.
const DefaultSystem = "You are a helpful assistant."

// PermanentError marks provider failures that retrying cannot fix, such
// as rejected credentials. The retry middleware stops on these.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func NewPermanentError(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ExtractJSON peels Markdown code fences and surrounding prose off a
// model reply, leaving the outermost JSON object. Models wrap JSON in
// ```json fences or chat filler no matter how firmly told not to.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// StructuredPrompt appends the schema block requests carry to the user
// prompt. Providers additionally enable native JSON response mode.
func StructuredPrompt(req output.StructuredRequest) string {
	if req.Schema == "" {
		return req.Prompt
	}

	name := req.SchemaName
	if name == "" {
		name = "requested"
	}

	var b strings.Builder
	b.WriteString(req.Prompt)
	b.WriteString("\n\nRespond with ONLY a valid JSON object matching the ")
	b.WriteString(name)
	b.WriteString(" schema:\n")
	b.WriteString(req.Schema)
	b.WriteString("\nDo not add explanations or markdown fences.")
	return b.String()
}
