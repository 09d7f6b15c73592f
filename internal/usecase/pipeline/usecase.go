// Package pipeline chains planning, execution and verification into the
// single task entry point.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"ops-assistant/internal/application/port/input"
	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/usecase/executor"
	"ops-assistant/internal/usecase/planner"
	"ops-assistant/internal/usecase/verifier"
)

var _ input.Pipeline = (*UseCase)(nil)

type UseCase struct {
	planner  *planner.UseCase
	executor *executor.UseCase
	verifier *verifier.UseCase
	logger   output.LoggerPort
}

func New(p *planner.UseCase, e *executor.UseCase, v *verifier.UseCase, logger output.LoggerPort) *UseCase {
	return &UseCase{planner: p, executor: e, verifier: v, logger: logger}
}

// Run executes one task end to end. All state is per-call, so concurrent
// runs are safe.
func (uc *UseCase) Run(ctx context.Context, task string) (*entity.VerificationResult, error) {
	log := uc.logger.WithField("run_id", uuid.NewString())
	log.Info("Task received", "task", task)

	plan, err := uc.planner.GeneratePlan(ctx, task)
	if err != nil {
		log.Error("Planning failed", "error", err)
		return nil, err
	}

	result := uc.executor.ExecutePlan(ctx, plan)
	verification := uc.verifier.Verify(ctx, plan, result)

	log.Info("Task finished",
		"status", string(result.OverallStatus),
		"complete", verification.IsComplete,
		"confidence", verification.ConfidenceScore,
	)
	return verification, nil
}
