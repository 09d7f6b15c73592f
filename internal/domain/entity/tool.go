package entity

import "strings"

// ToolID is the closed set of dispatch targets. Plans carry free-form
// labels; ParseToolID maps them onto this set once, at the execution
// boundary.
type ToolID string

const (
	ToolGitHub ToolID = "github"
	ToolNews   ToolID = "news"
	ToolLLM    ToolID = "llm"
)

func (t ToolID) String() string {
	return string(t)
}

// ParseToolID normalizes a plan's tool label. Models emit variants such
// as "GitHubTool", "NewsTool" or "language model"; matching is by
// case-insensitive substring, in the same precedence the labels are
// listed here.
func ParseToolID(raw string) (ToolID, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return "", false
	case strings.Contains(s, "github") || strings.Contains(s, "repo"):
		return ToolGitHub, true
	case strings.Contains(s, "news"):
		return ToolNews, true
	case strings.Contains(s, "llm") || strings.Contains(s, "language"):
		return ToolLLM, true
	}
	return "", false
}

// ToolDescription is the planner-facing view of a registered tool.
type ToolDescription struct {
	ID          ToolID
	Description string
	Actions     []string
}
