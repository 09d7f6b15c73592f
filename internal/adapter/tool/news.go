package tool

import (
	"context"
	"strings"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
)

var _ output.ToolPort = (*NewsTool)(nil)

type NewsTool struct {
	client output.NewsPort
	logger output.LoggerPort
}

func NewNewsTool(client output.NewsPort, logger output.LoggerPort) *NewsTool {
	return &NewsTool{client: client, logger: logger}
}

func (t *NewsTool) ID() entity.ToolID { return entity.ToolNews }

func (t *NewsTool) Description() string {
	return "Fetch recent news articles and top headlines"
}

func (t *NewsTool) Actions() []string {
	return []string{"search news", "top headlines"}
}

func (t *NewsTool) Execute(ctx context.Context, action string, params entity.Parameters) (entity.StepData, error) {
	a := strings.ToLower(action)

	if strings.Contains(a, "headline") {
		articles, err := t.client.TopHeadlines(ctx,
			params.String("category", ""),
			params.String("country", ""),
			params.Int("limit", 0),
		)
		if err != nil {
			return entity.StepData{}, err
		}
		return entity.StepData{Articles: articles}, nil
	}

	articles, err := t.client.SearchArticles(ctx,
		params.String("query", ""),
		params.Int("limit", 0),
		params.Int("window_days", 0),
	)
	if err != nil {
		return entity.StepData{}, err
	}
	return entity.StepData{Articles: articles}, nil
}
