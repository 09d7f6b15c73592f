package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ops-assistant/internal/application/port/output"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around", "Here is the plan:\n{\"a\": 1}\nHope it helps!", `{"a": 1}`},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"no json at all", "sorry, cannot do that", "sorry, cannot do that"},
	}

	for _, tc := range cases {
		if got := ExtractJSON(tc.in); got != tc.want {
			t.Errorf("%s: ExtractJSON = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsPermanent(t *testing.T) {
	base := errors.New("unauthorized")

	if !IsPermanent(NewPermanentError(base)) {
		t.Error("NewPermanentError should be permanent")
	}
	if !IsPermanent(fmt.Errorf("request failed: %w", NewPermanentError(base))) {
		t.Error("wrapping should not hide permanence")
	}
	if IsPermanent(base) {
		t.Error("plain errors are not permanent")
	}
	if NewPermanentError(nil) != nil {
		t.Error("NewPermanentError(nil) should be nil")
	}
}

func TestStructuredPrompt(t *testing.T) {
	req := output.StructuredRequest{
		Prompt:     "Plan the task",
		SchemaName: "execution_plan",
		Schema:     `{"steps": []}`,
	}

	got := StructuredPrompt(req)

	for _, want := range []string{"Plan the task", "execution_plan", `{"steps": []}`, "ONLY a valid JSON"} {
		if !strings.Contains(got, want) {
			t.Errorf("StructuredPrompt missing %q in:\n%s", want, got)
		}
	}

	bare := StructuredPrompt(output.StructuredRequest{Prompt: "just text"})
	if bare != "just text" {
		t.Errorf("prompt without schema should pass through, got %q", bare)
	}
}
