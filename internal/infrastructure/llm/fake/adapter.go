// Package fake provides a deterministic LLM adapter for tests and offline
// development. It always plans the same three steps regardless of the task.
package fake

import (
	"context"
	"encoding/json"

	"ops-assistant/internal/application/port/output"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return "fake"
}

const cannedPlan = `{
  "task_description": "Collect repositories and news, then summarize",
  "steps": [
    {
      "step_number": 1,
      "action": "search repositories",
      "tool": "GitHubTool",
      "parameters": {"query": "language:go", "sort": "stars", "limit": 3},
      "reasoning": "Find popular Go repositories"
    },
    {
      "step_number": 2,
      "action": "search news",
      "tool": "NewsTool",
      "parameters": {"query": "artificial intelligence", "limit": 3},
      "reasoning": "Find recent coverage"
    },
    {
      "step_number": 3,
      "action": "summarize",
      "tool": "LLM",
      "parameters": {"prompt": "Summarize the collected data"},
      "reasoning": "Condense the findings",
      "depends_on": [1, 2]
    }
  ]
}`

func (a *Adapter) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	return json.RawMessage(cannedPlan), nil
}

func (a *Adapter) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	return "The collected data covers popular repositories and recent news articles.", nil
}
