package tool

import (
	"context"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/prompts"
)

const defaultSummarizePrompt = "Summarize the data"

var _ output.ToolPort = (*SummarizeTool)(nil)

// SummarizeTool runs in-plan llm steps. The executor injects collected
// step output as the "context" parameter before dispatch.
type SummarizeTool struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewSummarizeTool(llm output.LLMPort, logger output.LoggerPort) *SummarizeTool {
	return &SummarizeTool{llm: llm, logger: logger}
}

func (t *SummarizeTool) ID() entity.ToolID { return entity.ToolLLM }

func (t *SummarizeTool) Description() string {
	return "Summarize, analyze or format data collected by earlier steps"
}

func (t *SummarizeTool) Actions() []string {
	return []string{"summarize", "analyze"}
}

func (t *SummarizeTool) Execute(ctx context.Context, action string, params entity.Parameters) (entity.StepData, error) {
	prompt, err := prompts.StepSummary(
		params.String("prompt", defaultSummarizePrompt),
		params.String("context", ""),
	)
	if err != nil {
		return entity.StepData{}, err
	}

	summary, err := t.llm.GenerateText(ctx, output.TextRequest{Prompt: prompt})
	if err != nil {
		return entity.StepData{}, err
	}
	return entity.StepData{Summary: summary}, nil
}
