// Package verifier checks execution results for completeness and builds
// the final response.
package verifier

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/prompts"
)

type UseCase struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func New(llm output.LLMPort, logger output.LoggerPort) *UseCase {
	return &UseCase{llm: llm, logger: logger}
}

// Verify analyzes step outcomes and produces the verified result. All
// structural fields derive from the inputs alone; only the summary calls
// the LLM, and a failed summary degrades to empty rather than failing
// the verification.
func (uc *UseCase) Verify(ctx context.Context, plan *entity.ExecutionPlan, result *entity.ExecutionResult) *entity.VerificationResult {
	data := make(map[string]entity.StepData)
	issues := []string{}
	succeeded := 0
	gapFound := false

	for _, r := range result.StepResults {
		if r.Status != entity.StepStatusSuccess {
			issues = append(issues, fmt.Sprintf("Step %d failed: %s", r.StepNumber, r.ErrorMessage))
			continue
		}

		succeeded++
		if r.Data != nil {
			data[entity.StepKey(r.StepNumber)] = *r.Data
		}

		// A fetch step that "succeeded" with nothing to show usually means
		// a wrong query, not a healthy run.
		if isFetchTool(r.ToolUsed) && (r.Data == nil || r.Data.IsEmpty()) {
			issues = append(issues, fmt.Sprintf("Step %d succeeded but returned no data", r.StepNumber))
			gapFound = true
		}
	}

	isComplete := result.OverallStatus == entity.StatusSuccess && !gapFound

	confidence := 1.0
	if len(result.StepResults) > 0 {
		confidence = float64(succeeded) / float64(len(result.StepResults))
	}

	uc.logger.Info("Verification completed",
		"complete", isComplete,
		"confidence", confidence,
		"issues", len(issues),
	)

	return &entity.VerificationResult{
		OriginalTask:    plan.TaskDescription,
		IsComplete:      isComplete,
		Summary:         uc.summarize(ctx, plan.TaskDescription, data, issues),
		Data:            data,
		Issues:          issues,
		ConfidenceScore: confidence,
	}
}

func isFetchTool(toolUsed string) bool {
	return toolUsed == entity.ToolGitHub.String() || toolUsed == entity.ToolNews.String()
}

func (uc *UseCase) summarize(ctx context.Context, task string, data map[string]entity.StepData, issues []string) string {
	prompt, err := prompts.Summary(task, formatData(data), strings.Join(issues, "; "))
	if err != nil {
		uc.logger.Warn("Summary prompt failed", "error", err)
		return ""
	}

	summary, err := uc.llm.GenerateText(ctx, output.TextRequest{
		System: prompts.SummarizerSystem(),
		Prompt: prompt,
	})
	if err != nil {
		uc.logger.Warn("Summary generation failed", "error", err)
		return ""
	}
	return summary
}

// formatData renders collected step data as a compact digest for the
// summary prompt: top repositories with star counts, article titles,
// step summaries verbatim.
func formatData(data map[string]entity.StepData) string {
	if len(data) == 0 {
		return "No data was collected."
	}

	var b strings.Builder
	for _, key := range sortedStepKeys(data) {
		d := data[key]
		switch {
		case len(d.Repos) > 0:
			fmt.Fprintf(&b, "GitHub repositories (%d found):\n", len(d.Repos))
			for _, repo := range firstRepos(d.Repos, 3) {
				fmt.Fprintf(&b, "  - %s: %d stars\n", repo.Name, repo.Stars)
			}
		case d.Details != nil:
			fmt.Fprintf(&b, "Repository %s: %d stars, %d forks, %d open issues\n",
				d.Details.FullName, d.Details.Stars, d.Details.Forks, d.Details.OpenIssues)
		case len(d.Articles) > 0:
			fmt.Fprintf(&b, "News articles (%d found):\n", len(d.Articles))
			for _, article := range firstArticles(d.Articles, 3) {
				fmt.Fprintf(&b, "  - %s\n", article.Title)
			}
		case d.Summary != "":
			fmt.Fprintf(&b, "Summary: %s\n", d.Summary)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "No data was collected."
	}
	return out
}

func sortedStepKeys(data map[string]entity.StepData) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return stepNumber(keys[i]) < stepNumber(keys[j])
	})
	return keys
}

func stepNumber(key string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(key, "step_"))
	return n
}

func firstRepos(repos []entity.Repository, n int) []entity.Repository {
	if len(repos) < n {
		return repos
	}
	return repos[:n]
}

func firstArticles(articles []entity.Article, n int) []entity.Article {
	if len(articles) < n {
		return articles
	}
	return articles[:n]
}
