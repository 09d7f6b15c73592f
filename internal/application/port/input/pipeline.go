package input

import (
	"context"

	"ops-assistant/internal/domain/entity"
)

// Pipeline is the single entry point: plan, execute, verify. The only
// error it returns is a fatal plan-generation failure; everything past
// planning is absorbed into the result.
type Pipeline interface {
	Run(ctx context.Context, task string) (*entity.VerificationResult, error)
}
