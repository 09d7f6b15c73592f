// Package github provides a client for the GitHub REST API search and
// repository endpoints.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

const (
	DefaultBaseURL = "https://api.github.com"

	defaultTimeout           = 10 * time.Second
	defaultRequestsPerMinute = 10

	// Unauthenticated search is capped at 10 requests/minute by GitHub;
	// responses are small, so 1MB is plenty.
	maxResponseBytes = 1 << 20

	defaultQuery = "language:python"
	defaultSort  = "stars"
	defaultLimit = 5
)

var _ output.GitHubPort = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	logger     output.LoggerPort
}

type Config struct {
	// Token raises the API rate limit. Optional.
	Token   string
	BaseURL string
	Timeout time.Duration
	// RequestsPerMinute throttles outgoing calls client-side.
	RequestsPerMinute int
	Logger            output.LoggerPort
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultRequestsPerMinute
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		logger:     cfg.Logger,
	}
}

type repoItem struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Language        string   `json:"language"`
	HTMLURL         string   `json:"html_url"`
	Topics          []string `json:"topics"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (i repoItem) toEntity() entity.Repository {
	return entity.Repository{
		Name:        i.Name,
		FullName:    i.FullName,
		Description: i.Description,
		Stars:       i.StargazersCount,
		Forks:       i.ForksCount,
		Language:    i.Language,
		URL:         i.HTMLURL,
		Topics:      i.Topics,
	}
}

func (c *Client) SearchRepositories(ctx context.Context, query, sort string, limit int) ([]entity.Repository, error) {
	if strings.TrimSpace(query) == "" {
		query = defaultQuery
	}
	if sort == "" {
		sort = defaultSort
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(limit))

	var result struct {
		Items []repoItem `json:"items"`
	}
	if err := c.get(ctx, "/search/repositories?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	repos := make([]entity.Repository, 0, len(result.Items))
	for _, item := range result.Items {
		repos = append(repos, item.toEntity())
	}

	if c.logger != nil {
		c.logger.Debug("github search completed", "query", query, "count", len(repos))
	}
	return repos, nil
}

// TrendingRepositories lists the most starred repositories created in the
// last seven days, optionally filtered by language.
func (c *Client) TrendingRepositories(ctx context.Context, language string, limit int) ([]entity.Repository, error) {
	if language == "" {
		language = "python"
	}
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	query := fmt.Sprintf("language:%s created:>%s", language, weekAgo)
	return c.SearchRepositories(ctx, query, "stars", limit)
}

func (c *Client) RepositoryDetails(ctx context.Context, owner, repo string) (*entity.Repository, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required, got %q/%q", owner, repo)
	}

	var item repoItem
	if err := c.get(ctx, "/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(repo), &item); err != nil {
		return nil, err
	}

	details := item.toEntity()
	details.OpenIssues = item.OpenIssuesCount
	details.CreatedAt = item.CreatedAt
	details.UpdatedAt = item.UpdatedAt
	return &details, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("github rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read github response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("github api rate limit exceeded (status 403): %s", snippet(body))
		}
		return fmt.Errorf("github api error (status %d): %s", resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
