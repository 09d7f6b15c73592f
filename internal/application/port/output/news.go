package output

import (
	"context"

	"ops-assistant/internal/domain/entity"
)

type NewsPort interface {
	SearchArticles(ctx context.Context, query string, limit, windowDays int) ([]entity.Article, error)
	TopHeadlines(ctx context.Context, category, country string, limit int) ([]entity.Article, error)
}
