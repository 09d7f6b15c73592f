package prompts

import (
	_ "embed"
)

//go:embed planner_system.txt
var plannerSystemTemplate string

//go:embed planner_task.txt
var plannerTaskTemplate string

//go:embed summarizer_system.txt
var summarizerSystemPrompt string

//go:embed summary.txt
var summaryTemplate string

//go:embed step_summary.txt
var stepSummaryTemplate string
