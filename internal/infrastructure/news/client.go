// Package news provides a client for the NewsAPI v2 endpoints.
package news

import (
	"context"
	"encoding/json"
	"errors"
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
	DefaultBaseURL = "https://newsapi.org/v2"

	defaultTimeout           = 10 * time.Second
	defaultRequestsPerMinute = 30
	maxResponseBytes         = 1 << 20

	defaultLimit      = 5
	defaultWindowDays = 7
	defaultCategory   = "technology"
	defaultCountry    = "us"

	// NewsAPI truncates content on the free tier anyway; keep it short.
	maxContentRunes = 200
)

// ErrMissingAPIKey is returned per call so the planner's other steps can
// still run when only the news key is absent.
var ErrMissingAPIKey = errors.New("news api key is not configured")

var _ output.NewsPort = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     output.LoggerPort
}

type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
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
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		logger:     cfg.Logger,
	}
}

type articleItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type apiResponse struct {
	Status   string        `json:"status"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Articles []articleItem `json:"articles"`
}

func (i articleItem) toEntity() entity.Article {
	return entity.Article{
		Title:       stripHTML(i.Title),
		Description: stripHTML(i.Description),
		Source:      i.Source.Name,
		Author:      i.Author,
		URL:         i.URL,
		PublishedAt: i.PublishedAt,
		Content:     truncateRunes(stripHTML(i.Content), maxContentRunes),
	}
}

// SearchArticles queries the everything endpoint for recent articles.
// windowDays bounds how far back results may reach; zero means the
// default seven day window.
func (c *Client) SearchArticles(ctx context.Context, query string, limit, windowDays int) ([]entity.Article, error) {
	if strings.TrimSpace(query) == "" {
		query = "technology"
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	from := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("from", from)
	params.Set("pageSize", strconv.Itoa(limit))

	articles, err := c.get(ctx, "/everything?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("news search completed", "query", query, "count", len(articles))
	}
	return articles, nil
}

func (c *Client) TopHeadlines(ctx context.Context, category, country string, limit int) ([]entity.Article, error) {
	if category == "" {
		category = defaultCategory
	}
	if country == "" {
		country = defaultCountry
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("category", category)
	params.Set("country", country)
	params.Set("pageSize", strconv.Itoa(limit))

	return c.get(ctx, "/top-headlines?"+params.Encode())
}

func (c *Client) get(ctx context.Context, path string) ([]entity.Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("news rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode news response (status %d): %w", resp.StatusCode, err)
	}

	// NewsAPI reports failures in the body, with the HTTP status mirroring
	// the "code" field.
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("news api error (%s): %s", decoded.Code, decoded.Message)
	}

	articles := make([]entity.Article, 0, len(decoded.Articles))
	for _, item := range decoded.Articles {
		articles = append(articles, item.toEntity())
	}
	return articles, nil
}
