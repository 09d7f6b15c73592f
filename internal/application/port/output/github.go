package output

import (
	"context"

	"ops-assistant/internal/domain/entity"
)

type GitHubPort interface {
	SearchRepositories(ctx context.Context, query, sortKey string, limit int) ([]entity.Repository, error)
	TrendingRepositories(ctx context.Context, language string, limit int) ([]entity.Repository, error)
	RepositoryDetails(ctx context.Context, owner, repo string) (*entity.Repository, error)
}
