package output

import (
	"context"

	"ops-assistant/internal/domain/entity"
)

type ToolPort interface {
	ID() entity.ToolID
	Description() string
	Actions() []string
	Execute(ctx context.Context, action string, params entity.Parameters) (entity.StepData, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(id entity.ToolID) (ToolPort, bool)
	All() []ToolPort
	Catalog() []entity.ToolDescription
}
