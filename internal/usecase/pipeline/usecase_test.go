package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/application/service"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/llm/fake"
	"ops-assistant/internal/infrastructure/logger"
	"ops-assistant/internal/usecase/executor"
	"ops-assistant/internal/usecase/planner"
	"ops-assistant/internal/usecase/verifier"
)

type stubTool struct {
	id   entity.ToolID
	data entity.StepData
	err  error
}

func (t *stubTool) ID() entity.ToolID   { return t.id }
func (t *stubTool) Description() string { return "stub" }
func (t *stubTool) Actions() []string   { return nil }

func (t *stubTool) Execute(ctx context.Context, action string, params entity.Parameters) (entity.StepData, error) {
	if t.err != nil {
		return entity.StepData{}, t.err
	}
	return t.data, nil
}

type failingLLM struct{}

func (f *failingLLM) Name() string { return "failing" }

func (f *failingLLM) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	return nil, errors.New("model offline")
}

func (f *failingLLM) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	return "", errors.New("model offline")
}

func newPipeline(llm output.LLMPort, tools ...output.ToolPort) *UseCase {
	registry := service.NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	log := logger.NewNop()
	return New(
		planner.New(llm, registry, log),
		executor.New(registry, log),
		verifier.New(llm, log),
		log,
	)
}

func TestRunEndToEnd(t *testing.T) {
	uc := newPipeline(fake.NewAdapter(),
		&stubTool{id: entity.ToolGitHub, data: entity.StepData{Repos: []entity.Repository{{Name: "r", Stars: 5}}}},
		&stubTool{id: entity.ToolNews, data: entity.StepData{Articles: []entity.Article{{Title: "a"}}}},
		&stubTool{id: entity.ToolLLM, data: entity.StepData{Summary: "s"}},
	)

	result, err := uc.Run(context.Background(), "collect go repos and ai news")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.IsComplete {
		t.Errorf("expected complete result, issues: %v", result.Issues)
	}
	if result.ConfidenceScore != 1.0 {
		t.Errorf("confidence = %v, want 1.0", result.ConfidenceScore)
	}
	for _, key := range []string{entity.StepKey(1), entity.StepKey(2), entity.StepKey(3)} {
		if _, ok := result.Data[key]; !ok {
			t.Errorf("data map missing %s", key)
		}
	}
	if result.Summary == "" {
		t.Error("expected a non-empty summary")
	}
}

func TestRunAbortsWhenPlanningFails(t *testing.T) {
	uc := newPipeline(&failingLLM{})

	result, err := uc.Run(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected planning failure to abort the run")
	}
	if result != nil {
		t.Errorf("result should be nil on abort, got %+v", result)
	}

	var planErr *entity.PlanGenerationError
	if !errors.As(err, &planErr) {
		t.Errorf("expected PlanGenerationError, got %T", err)
	}
}

func TestRunContainsToolFailure(t *testing.T) {
	uc := newPipeline(fake.NewAdapter(),
		&stubTool{id: entity.ToolGitHub, data: entity.StepData{Repos: []entity.Repository{{Name: "r"}}}},
		&stubTool{id: entity.ToolNews, err: errors.New("service unavailable")},
		&stubTool{id: entity.ToolLLM, data: entity.StepData{Summary: "s"}},
	)

	result, err := uc.Run(context.Background(), "collect data")
	if err != nil {
		t.Fatalf("tool failures must not abort the run: %v", err)
	}

	if result.IsComplete {
		t.Error("a failed step must not verify as complete")
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected one issue, got %v", result.Issues)
	}
	if !strings.Contains(result.Issues[0], "Step 2 failed") {
		t.Errorf("issue should name the failed step, got %q", result.Issues[0])
	}
	if _, ok := result.Data[entity.StepKey(2)]; ok {
		t.Error("failed step must not contribute data")
	}
}
