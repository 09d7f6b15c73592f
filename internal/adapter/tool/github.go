package tool

import (
	"context"
	"fmt"
	"strings"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

var _ output.ToolPort = (*GitHubTool)(nil)

type GitHubTool struct {
	client output.GitHubPort
	logger output.LoggerPort
}

func NewGitHubTool(client output.GitHubPort, logger output.LoggerPort) *GitHubTool {
	return &GitHubTool{client: client, logger: logger}
}

func (t *GitHubTool) ID() entity.ToolID { return entity.ToolGitHub }

func (t *GitHubTool) Description() string {
	return "Search GitHub repositories, list trending repositories and fetch repository details"
}

func (t *GitHubTool) Actions() []string {
	return []string{"search repositories", "trending repositories", "repository details"}
}

// Execute routes by substring so the planner's free-form action phrasing
// ("get trending repos", "look up repo details") still dispatches.
// Anything unrecognized falls back to search.
func (t *GitHubTool) Execute(ctx context.Context, action string, params entity.Parameters) (entity.StepData, error) {
	a := strings.ToLower(action)

	switch {
	case strings.Contains(a, "trending"):
		repos, err := t.client.TrendingRepositories(ctx, params.String("language", ""), params.Int("limit", 0))
		if err != nil {
			return entity.StepData{}, err
		}
		return entity.StepData{Repos: repos}, nil

	case strings.Contains(a, "detail"):
		owner, repo, err := repoRef(params)
		if err != nil {
			return entity.StepData{}, err
		}
		details, err := t.client.RepositoryDetails(ctx, owner, repo)
		if err != nil {
			return entity.StepData{}, err
		}
		return entity.StepData{Details: details}, nil

	default:
		repos, err := t.client.SearchRepositories(ctx,
			params.String("query", ""),
			params.String("sort", ""),
			params.Int("limit", 0),
		)
		if err != nil {
			return entity.StepData{}, err
		}
		return entity.StepData{Repos: repos}, nil
	}
}

// repoRef reads the target repository from either separate owner/repo
// parameters or a combined "owner/repo" string.
func repoRef(params entity.Parameters) (string, string, error) {
	owner := params.String("owner", "")
	repo := params.String("repo", "")
	if owner != "" && repo != "" {
		return owner, repo, nil
	}

	if full := params.String("repository", ""); full != "" {
		if parts := strings.SplitN(full, "/", 2); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}

	return "", "", fmt.Errorf("repository details need owner and repo parameters, or repository as owner/repo")
}
