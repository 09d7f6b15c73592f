package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
  "total_count": 2,
  "items": [
    {
      "name": "gin",
      "full_name": "gin-gonic/gin",
      "description": "HTTP web framework",
      "stargazers_count": 75000,
      "forks_count": 8000,
      "language": "Go",
      "html_url": "https://github.com/gin-gonic/gin",
      "topics": ["http", "framework"]
    },
    {
      "name": "echo",
      "full_name": "labstack/echo",
      "description": "Minimalist web framework",
      "stargazers_count": 29000,
      "forks_count": 2400,
      "language": "Go",
      "html_url": "https://github.com/labstack/echo"
    }
  ]
}`

func TestSearchRepositories(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/repositories", r.URL.Path)
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":        q.Get("q"),
			"sort":     q.Get("sort"),
			"order":    q.Get("order"),
			"per_page": q.Get("per_page"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	repos, err := client.SearchRepositories(context.Background(), "web framework language:go", "stars", 2)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "web framework language:go", gotQuery["q"])
	assert.Equal(t, "stars", gotQuery["sort"])
	assert.Equal(t, "desc", gotQuery["order"])
	assert.Equal(t, "2", gotQuery["per_page"])

	assert.Equal(t, "gin", repos[0].Name)
	assert.Equal(t, "gin-gonic/gin", repos[0].FullName)
	assert.Equal(t, 75000, repos[0].Stars)
	assert.Equal(t, 8000, repos[0].Forks)
	assert.Equal(t, "https://github.com/gin-gonic/gin", repos[0].URL)
	assert.Equal(t, []string{"http", "framework"}, repos[0].Topics)
}

func TestSearchRepositoriesAppliesDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "language:python", q.Get("q"))
		assert.Equal(t, "stars", q.Get("sort"))
		assert.Equal(t, "5", q.Get("per_page"))

		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	repos, err := client.SearchRepositories(context.Background(), "  ", "", 0)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestTrendingRepositoriesBuildsCreatedQuery(t *testing.T) {
	var gotQ, gotSort string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotSort = r.URL.Query().Get("sort")
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.TrendingRepositories(context.Background(), "go", 3)
	require.NoError(t, err)

	assert.Contains(t, gotQ, "language:go")
	assert.Contains(t, gotQ, "created:>")
	assert.Equal(t, "stars", gotSort)
}

func TestRepositoryDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/golang/go", r.URL.Path)
		w.Write([]byte(`{
			"name": "go",
			"full_name": "golang/go",
			"description": "The Go programming language",
			"stargazers_count": 120000,
			"forks_count": 17000,
			"open_issues_count": 9000,
			"language": "Go",
			"html_url": "https://github.com/golang/go",
			"created_at": "2014-08-19T04:33:40Z",
			"updated_at": "2025-01-02T10:00:00Z"
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	details, err := client.RepositoryDetails(context.Background(), "golang", "go")
	require.NoError(t, err)

	assert.Equal(t, "go", details.Name)
	assert.Equal(t, 120000, details.Stars)
	assert.Equal(t, 9000, details.OpenIssues)
	assert.Equal(t, "2014-08-19T04:33:40Z", details.CreatedAt)
}

func TestRepositoryDetailsRequiresOwnerAndRepo(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:0"})

	_, err := client.RepositoryDetails(context.Background(), "", "go")
	require.Error(t, err)
}

func TestRateLimitExceededError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.SearchRepositories(context.Background(), "anything", "", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestTokenIsSentAsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "secret"})

	_, err := client.SearchRepositories(context.Background(), "q", "", 1)
	require.NoError(t, err)
}
