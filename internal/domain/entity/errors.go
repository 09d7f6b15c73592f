package entity

import "fmt"

// PlanGenerationError is fatal: without a plan there is nothing to
// execute or verify.
type PlanGenerationError struct {
	Err error
}

func (e *PlanGenerationError) Error() string {
	return fmt.Sprintf("plan generation failed: %v", e.Err)
}

func (e *PlanGenerationError) Unwrap() error {
	return e.Err
}

// ToolResolutionError means a plan named a tool outside the known set.
// It is contained to the step that carried the label.
type ToolResolutionError struct {
	Tool string
}

func (e *ToolResolutionError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Tool)
}

// ToolInvocationError wraps a failure inside a resolved tool. Contained
// to its step.
type ToolInvocationError struct {
	Tool   ToolID
	Action string
	Err    error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool %s failed on %q: %v", e.Tool, e.Action, e.Err)
}

func (e *ToolInvocationError) Unwrap() error {
	return e.Err
}

// OutputParsingError means a model reply did not match the requested
// schema. Fatal when raised during plan generation, cosmetic when raised
// during summarization.
type OutputParsingError struct {
	Schema string
	Raw    string
	Err    error
}

func (e *OutputParsingError) Error() string {
	raw := e.Raw
	if len(raw) > 500 {
		raw = raw[:500] + "..."
	}
	return fmt.Sprintf("response does not match %s schema: %v (response: %s)", e.Schema, e.Err, raw)
}

func (e *OutputParsingError) Unwrap() error {
	return e.Err
}
