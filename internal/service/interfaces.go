package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"headlines/internal/domain"
)

type Source interface {
	ID() string
	Name() string
	FetchTopHeadlines(ctx context.Context, q domain.HeadlineQuery) ([]domain.Article, error)
}

// HistoryStore persists the search history. Save replaces the stored list with queries, in order.
type HistoryStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, queries []string) error
}

type DetailPublisher interface {
	PublishDetail(ctx context.Context, article *domain.Article, encoded string) error
	Close() error
}
