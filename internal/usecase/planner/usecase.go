// Package planner turns a natural language task into a structured
// execution plan via the LLM.
package planner

import (
	"context"
	"encoding/json"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/prompts"
)

type UseCase struct {
	llm    output.LLMPort
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func New(llm output.LLMPort, tools output.ToolRegistry, logger output.LoggerPort) *UseCase {
	return &UseCase{llm: llm, tools: tools, logger: logger}
}

// GeneratePlan asks the model for an execution plan. Every failure mode
// comes back as *entity.PlanGenerationError; the pipeline treats it as
// fatal since nothing can execute without a plan. The task goes to the
// model as-is, even when empty or conversational; a zero-step plan is a
// valid answer.
func (uc *UseCase) GeneratePlan(ctx context.Context, task string) (*entity.ExecutionPlan, error) {
	uc.logger.Info("Generating plan", "task", task, "provider", uc.llm.Name())

	system, err := prompts.PlannerSystem(uc.tools.Catalog())
	if err != nil {
		return nil, &entity.PlanGenerationError{Err: err}
	}
	user, err := prompts.PlannerTask(task)
	if err != nil {
		return nil, &entity.PlanGenerationError{Err: err}
	}

	raw, err := uc.llm.GenerateStructured(ctx, output.StructuredRequest{
		System:     system,
		Prompt:     user,
		SchemaName: prompts.PlanSchemaName,
		Schema:     prompts.PlanSchema(),
	})
	if err != nil {
		return nil, &entity.PlanGenerationError{Err: err}
	}

	var plan entity.ExecutionPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &entity.PlanGenerationError{
			Err: &entity.OutputParsingError{Schema: prompts.PlanSchemaName, Raw: string(raw), Err: err},
		}
	}

	plan.Normalize()
	if err := plan.Validate(); err != nil {
		return nil, &entity.PlanGenerationError{Err: err}
	}

	// Models sometimes leave the echo field blank; the verifier needs it.
	if plan.TaskDescription == "" {
		plan.TaskDescription = task
	}

	uc.logger.Info("Plan generated", "steps", len(plan.Steps))
	return &plan, nil
}
