package entity

import (
	"fmt"
	"sort"
)

type PlanStep struct {
	StepNumber int        `json:"step_number"`
	Action     string     `json:"action"`
	Tool       string     `json:"tool"`
	Parameters Parameters `json:"parameters,omitempty"`
	Reasoning  string     `json:"reasoning,omitempty"`
	DependsOn  []int      `json:"depends_on,omitempty"`
}

type ExecutionPlan struct {
	TaskDescription string     `json:"task_description"`
	Steps           []PlanStep `json:"steps"`
	ExpectedOutcome string     `json:"expected_outcome"`
}

// Normalize orders steps by step number. Models occasionally emit steps
// out of order even when numbered correctly.
func (p *ExecutionPlan) Normalize() {
	sort.SliceStable(p.Steps, func(i, j int) bool {
		return p.Steps[i].StepNumber < p.Steps[j].StepNumber
	})
}

// Validate checks step numbering and cross-step references. Steps must
// already be in ascending order; call Normalize first on untrusted input.
// An empty plan is valid.
func (p *ExecutionPlan) Validate() error {
	seen := make(map[int]bool, len(p.Steps))
	prev := 0

	for i, step := range p.Steps {
		if step.StepNumber <= 0 {
			return fmt.Errorf("step %d: step_number must be positive, got %d", i+1, step.StepNumber)
		}
		if seen[step.StepNumber] {
			return fmt.Errorf("duplicate step_number %d", step.StepNumber)
		}
		if step.StepNumber <= prev {
			return fmt.Errorf("step_number %d is not ascending", step.StepNumber)
		}

		for _, dep := range step.DependsOn {
			if dep >= step.StepNumber {
				return fmt.Errorf("step %d: depends_on %d does not reference an earlier step", step.StepNumber, dep)
			}
			if !seen[dep] {
				return fmt.Errorf("step %d: depends_on %d references an unknown step", step.StepNumber, dep)
			}
		}

		seen[step.StepNumber] = true
		prev = step.StepNumber
	}

	return nil
}
