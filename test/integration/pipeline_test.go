package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-assistant/internal/di"
	"ops-assistant/internal/domain/entity"
)

const fakeSummary = "The collected data covers popular repositories and recent news articles."

type recordedRequest struct {
	path  string
	query url.Values
	auth  string
}

func githubStubServer(got *recordedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"name": "gin", "full_name": "gin-gonic/gin", "stargazers_count": 75000, "language": "Go", "html_url": "https://github.com/gin-gonic/gin"},
				{"name": "echo", "full_name": "labstack/echo", "stargazers_count": 28000, "language": "Go", "html_url": "https://github.com/labstack/echo"}
			]
		}`)
	}))
}

func newsStubServer(got *recordedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.auth = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"status": "ok",
			"articles": [
				{"title": "Model release", "source": {"name": "Wired"}, "publishedAt": "2025-06-01T10:00:00Z"},
				{"title": "Chip shortage easing", "source": {"name": "Reuters"}, "publishedAt": "2025-06-02T08:00:00Z"}
			]
		}`)
	}))
}

func newTestConfig(githubURL, newsURL string) di.Config {
	return di.Config{
		Provider:      "fake",
		GitHubToken:   "gh-token",
		GitHubBaseURL: githubURL,
		NewsAPIKey:    "news-key",
		NewsBaseURL:   newsURL,
		LogLevel:      "error",
	}
}

func TestPipelineAgainstStubbedAPIs(t *testing.T) {
	var githubReq, newsReq recordedRequest

	githubSrv := githubStubServer(&githubReq)
	defer githubSrv.Close()
	newsSrv := newsStubServer(&newsReq)
	defer newsSrv.Close()

	ctx := context.Background()
	container, err := di.NewContainer(ctx, newTestConfig(githubSrv.URL, newsSrv.URL))
	require.NoError(t, err)
	defer container.Close()

	task := "collect popular go repositories and recent ai news"
	result, err := container.Pipeline.Run(ctx, task)
	require.NoError(t, err)

	assert.Equal(t, task, result.OriginalTask)
	assert.True(t, result.IsComplete)
	assert.Equal(t, 1.0, result.ConfidenceScore)
	assert.Empty(t, result.Issues)
	assert.Equal(t, fakeSummary, result.Summary)

	repos := result.Data[entity.StepKey(1)].Repos
	require.Len(t, repos, 2)
	assert.Equal(t, "gin", repos[0].Name)
	assert.Equal(t, 75000, repos[0].Stars)

	articles := result.Data[entity.StepKey(2)].Articles
	require.Len(t, articles, 2)
	assert.Equal(t, "Model release", articles[0].Title)
	assert.Equal(t, "Wired", articles[0].Source)

	assert.Equal(t, fakeSummary, result.Data[entity.StepKey(3)].Summary)

	assert.Equal(t, "/search/repositories", githubReq.path)
	assert.Equal(t, "language:go", githubReq.query.Get("q"))
	assert.Equal(t, "stars", githubReq.query.Get("sort"))
	assert.Equal(t, "3", githubReq.query.Get("per_page"))
	assert.Equal(t, "token gh-token", githubReq.auth)

	assert.Equal(t, "/everything", newsReq.path)
	assert.Equal(t, "artificial intelligence", newsReq.query.Get("q"))
	assert.Equal(t, "3", newsReq.query.Get("pageSize"))
	assert.Equal(t, "news-key", newsReq.auth)
}

func TestPipelineContainsFailingStep(t *testing.T) {
	var githubReq recordedRequest

	githubSrv := githubStubServer(&githubReq)
	defer githubSrv.Close()
	newsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "error", "code": "apiKeyInvalid", "message": "invalid api key"}`)
	}))
	defer newsSrv.Close()

	ctx := context.Background()
	container, err := di.NewContainer(ctx, newTestConfig(githubSrv.URL, newsSrv.URL))
	require.NoError(t, err)
	defer container.Close()

	result, err := container.Pipeline.Run(ctx, "collect repositories and news")
	require.NoError(t, err, "a failed step must not abort the run")

	assert.False(t, result.IsComplete)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "Step 2 failed")
	assert.Contains(t, result.Issues[0], "apiKeyInvalid")
	assert.InDelta(t, 2.0/3.0, result.ConfidenceScore, 0.001)

	assert.Contains(t, result.Data, entity.StepKey(1))
	assert.NotContains(t, result.Data, entity.StepKey(2))
	assert.Contains(t, result.Data, entity.StepKey(3))
}

func TestContainerRejectsBadProviderConfig(t *testing.T) {
	ctx := context.Background()

	_, err := di.NewContainer(ctx, di.Config{Provider: "quantum", LogLevel: "error"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")

	_, err = di.NewContainer(ctx, di.Config{LogLevel: "error"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}
