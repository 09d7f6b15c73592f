package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

type textLLMStub struct {
	lastPrompt string
}

func (s *textLLMStub) Name() string { return "stub" }

func (s *textLLMStub) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	return nil, nil
}

func (s *textLLMStub) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	s.lastPrompt = req.Prompt
	return "a summary", nil
}

func TestSummarizeToolAppendsContext(t *testing.T) {
	stub := &textLLMStub{}
	tool := NewSummarizeTool(stub, nil)

	params := entity.Parameters{
		"prompt":  "Summarize the findings",
		"context": `{"step_1": {"repos": []}}`,
	}
	data, err := tool.Execute(context.Background(), "summarize", params)
	require.NoError(t, err)

	assert.Equal(t, "a summary", data.Summary)
	assert.Contains(t, stub.lastPrompt, "Summarize the findings")
	assert.Contains(t, stub.lastPrompt, "Data from previous steps:")
	assert.Contains(t, stub.lastPrompt, `"step_1"`)
}

func TestSummarizeToolDefaultPrompt(t *testing.T) {
	stub := &textLLMStub{}
	tool := NewSummarizeTool(stub, nil)

	_, err := tool.Execute(context.Background(), "summarize", entity.Parameters{})
	require.NoError(t, err)

	assert.Equal(t, "Summarize the data", stub.lastPrompt)
}
