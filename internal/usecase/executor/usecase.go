// Package executor runs execution plans step by step against the tool
// registry.
package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

// maxContextChars bounds the data digest injected into llm steps so a
// large fetch cannot blow the model's context window.
const maxContextChars = 12000

type UseCase struct {
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func New(tools output.ToolRegistry, logger output.LoggerPort) *UseCase {
	return &UseCase{tools: tools, logger: logger}
}

// ExecutePlan runs every step and never returns an error: failures are
// contained in the step results, and the aggregate status reports how
// much of the plan succeeded.
func (uc *UseCase) ExecutePlan(ctx context.Context, plan *entity.ExecutionPlan) *entity.ExecutionResult {
	uc.logger.Info("Executing plan", "steps", len(plan.Steps))

	results := make([]entity.StepResult, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		result := uc.executeStep(ctx, step, results)
		if result.Status == entity.StepStatusSuccess {
			uc.logger.Info("Step completed", "step", step.StepNumber, "tool", result.ToolUsed)
		} else {
			uc.logger.Warn("Step failed", "step", step.StepNumber, "tool", result.ToolUsed, "error", result.ErrorMessage)
		}
		results = append(results, result)
	}

	status := entity.DeriveOverallStatus(results)
	uc.logger.Info("Plan executed", "status", string(status))

	return &entity.ExecutionResult{
		PlanDescription: plan.TaskDescription,
		StepResults:     results,
		OverallStatus:   status,
	}
}

// executeStep contains every failure mode of a single step, including a
// panicking tool, so one bad step cannot take down the rest of the plan.
func (uc *UseCase) executeStep(ctx context.Context, step entity.PlanStep, prior []entity.StepResult) (result entity.StepResult) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Tool panicked", "step", step.StepNumber, "tool", step.Tool, "panic", r)
			result = entity.NewStepFailure(step, step.Tool, fmt.Errorf("tool panicked: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return entity.NewStepFailure(step, step.Tool, fmt.Errorf("step not executed: %w", err))
	}

	id, ok := entity.ParseToolID(step.Tool)
	if !ok {
		return entity.NewStepFailure(step, step.Tool, &entity.ToolResolutionError{Tool: step.Tool})
	}

	tool, ok := uc.tools.Get(id)
	if !ok {
		return entity.NewStepFailure(step, id.String(), &entity.ToolResolutionError{Tool: step.Tool})
	}

	params := step.Parameters
	if id == entity.ToolLLM {
		if digest := contextDigest(step, prior); digest != "" {
			params = params.With("context", digest)
		}
	}

	uc.logger.Debug("Executing step", "step", step.StepNumber, "tool", id.String(), "action", step.Action)

	data, err := tool.Execute(ctx, step.Action, params)
	if err != nil {
		return entity.NewStepFailure(step, id.String(), &entity.ToolInvocationError{
			Tool:   id,
			Action: step.Action,
			Err:    err,
		})
	}

	return entity.NewStepSuccess(step, id, data)
}

// contextDigest collects prior successful step data for an llm step. The
// steps named in depends_on are used when present, otherwise everything
// that has succeeded so far.
func contextDigest(step entity.PlanStep, prior []entity.StepResult) string {
	wanted := make(map[int]bool, len(step.DependsOn))
	for _, n := range step.DependsOn {
		wanted[n] = true
	}

	digest := make(map[string]*entity.StepData)
	for _, r := range prior {
		if r.Status != entity.StepStatusSuccess || r.Data == nil {
			continue
		}
		if len(wanted) > 0 && !wanted[r.StepNumber] {
			continue
		}
		digest[entity.StepKey(r.StepNumber)] = r.Data
	}
	if len(digest) == 0 {
		return ""
	}

	raw, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return ""
	}

	s := string(raw)
	if len(s) > maxContextChars {
		s = s[:maxContextChars] + "\n... (truncated)"
	}
	return s
}
