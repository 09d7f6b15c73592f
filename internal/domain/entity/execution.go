package entity

type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusError   StepStatus = "error"
)

type OverallStatus string

const (
	StatusSuccess        OverallStatus = "success"
	StatusPartialFailure OverallStatus = "partial_failure"
	StatusFailure        OverallStatus = "failure"
)

// StepData carries a tool's output. Exactly the fields matching the tool
// that produced it are set; the rest stay empty.
type StepData struct {
	Repos    []Repository `json:"repos,omitempty"`
	Articles []Article    `json:"articles,omitempty"`
	Details  *Repository  `json:"details,omitempty"`
	Summary  string       `json:"summary,omitempty"`
}

func (d StepData) IsEmpty() bool {
	return len(d.Repos) == 0 && len(d.Articles) == 0 && d.Details == nil && d.Summary == ""
}

// StepResult records one step's outcome. Data is set on success,
// ErrorMessage on error, never both.
type StepResult struct {
	StepNumber   int        `json:"step_number"`
	Action       string     `json:"action"`
	ToolUsed     string     `json:"tool_used"`
	Status       StepStatus `json:"status"`
	Data         *StepData  `json:"data,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

func NewStepSuccess(step PlanStep, tool ToolID, data StepData) StepResult {
	return StepResult{
		StepNumber: step.StepNumber,
		Action:     step.Action,
		ToolUsed:   tool.String(),
		Status:     StepStatusSuccess,
		Data:       &data,
	}
}

// NewStepFailure takes toolUsed as a string: the canonical id when the
// tool resolved, or the raw plan label when it did not.
func NewStepFailure(step PlanStep, toolUsed string, err error) StepResult {
	return StepResult{
		StepNumber:   step.StepNumber,
		Action:       step.Action,
		ToolUsed:     toolUsed,
		Status:       StepStatusError,
		ErrorMessage: err.Error(),
	}
}

type ExecutionResult struct {
	PlanDescription string        `json:"plan_description"`
	StepResults     []StepResult  `json:"step_results"`
	OverallStatus   OverallStatus `json:"overall_status"`
}

// DeriveOverallStatus maps step outcomes to the aggregate status.
// A result with no steps counts as success.
func DeriveOverallStatus(results []StepResult) OverallStatus {
	succeeded := 0
	for _, r := range results {
		if r.Status == StepStatusSuccess {
			succeeded++
		}
	}

	switch {
	case succeeded == len(results):
		return StatusSuccess
	case succeeded == 0:
		return StatusFailure
	default:
		return StatusPartialFailure
	}
}
