package entity

import "fmt"

type VerificationResult struct {
	OriginalTask    string              `json:"original_task"`
	IsComplete      bool                `json:"is_complete"`
	Summary         string              `json:"summary"`
	Data            map[string]StepData `json:"data"`
	Issues          []string            `json:"issues"`
	ConfidenceScore float64             `json:"confidence_score"`
}

// StepKey is the data map key for a step's output, e.g. "step_2".
func StepKey(stepNumber int) string {
	return fmt.Sprintf("step_%d", stepNumber)
}
