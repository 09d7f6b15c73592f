// Package prompts renders the prompt templates shipped with the binary.
// Templates are embedded so the binary stays self-contained.
package prompts

import (
	"fmt"
	"strings"

	langchain "github.com/tmc/langchaingo/prompts"

	"ops-assistant/internal/domain/entity"
)

// PlanSchemaName labels the plan schema in structured generation requests.
const PlanSchemaName = "execution_plan"

const planSchema = `{
  "task_description": "string",
  "steps": [
    {
      "step_number": 1,
      "action": "string",
      "tool": "string",
      "parameters": {},
      "reasoning": "string",
      "depends_on": [1]
    }
  ],
  "expected_outcome": "string"
}`

// PlanSchema returns the JSON shape the planner must produce.
func PlanSchema() string {
	return planSchema
}

// PlannerSystem renders the planner system prompt with the tool catalog.
func PlannerSystem(catalog []entity.ToolDescription) (string, error) {
	tmpl := langchain.NewPromptTemplate(plannerSystemTemplate, []string{"tools"})
	out, err := tmpl.Format(map[string]any{"tools": renderCatalog(catalog)})
	if err != nil {
		return "", fmt.Errorf("render planner system prompt: %w", err)
	}
	return out, nil
}

// PlannerTask renders the planner user prompt for a task.
func PlannerTask(task string) (string, error) {
	tmpl := langchain.NewPromptTemplate(plannerTaskTemplate, []string{"task"})
	out, err := tmpl.Format(map[string]any{"task": task})
	if err != nil {
		return "", fmt.Errorf("render planner task prompt: %w", err)
	}
	return out, nil
}

// SummarizerSystem returns the system prompt for result summaries.
func SummarizerSystem() string {
	return summarizerSystemPrompt
}

// Summary renders the final summary prompt. An empty issues string is
// reported as "None" so the model does not invent problems.
func Summary(task, data, issues string) (string, error) {
	if issues == "" {
		issues = "None"
	}
	tmpl := langchain.NewPromptTemplate(summaryTemplate, []string{"task", "data", "issues"})
	out, err := tmpl.Format(map[string]any{"task": task, "data": data, "issues": issues})
	if err != nil {
		return "", fmt.Errorf("render summary prompt: %w", err)
	}
	return out, nil
}

// StepSummary appends collected step data to an in-plan llm prompt. With
// no context the prompt passes through unchanged.
func StepSummary(prompt, context string) (string, error) {
	if context == "" {
		return prompt, nil
	}
	tmpl := langchain.NewPromptTemplate(stepSummaryTemplate, []string{"prompt", "context"})
	out, err := tmpl.Format(map[string]any{"prompt": prompt, "context": context})
	if err != nil {
		return "", fmt.Errorf("render step summary prompt: %w", err)
	}
	return out, nil
}

func renderCatalog(catalog []entity.ToolDescription) string {
	var b strings.Builder
	for i, tool := range catalog {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s - %s", i+1, tool.ID, tool.Description)
		if len(tool.Actions) > 0 {
			fmt.Fprintf(&b, "\n   Actions: %s", strings.Join(tool.Actions, ", "))
		}
	}
	return b.String()
}
