package service

import (
	"sort"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

type ToolRegistryImpl struct {
	tools map[entity.ToolID]output.ToolPort
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolID]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	r.tools[tool.ID()] = tool
}

func (r *ToolRegistryImpl) Get(id entity.ToolID) (output.ToolPort, bool) {
	tool, ok := r.tools[id]
	return tool, ok
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	return result
}

// Catalog lists registered tools sorted by id, so prompts built from it
// are stable between runs.
func (r *ToolRegistryImpl) Catalog() []entity.ToolDescription {
	result := make([]entity.ToolDescription, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, entity.ToolDescription{
			ID:          tool.ID(),
			Description: tool.Description(),
			Actions:     tool.Actions(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
