package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/postdex/internal/domain"
	"github.com/kailas-cloud/postdex/internal/domain/search/result"
	"github.com/kailas-cloud/postdex/internal/logger"
)

// Service runs semantic search: embed the query, then delegate the
// nearest-neighbour search to the store.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Search returns the posts closest to q, in the order the store ranks them.
// Results are not filtered, re-ranked or truncated here.
func (s *Service) Search(ctx context.Context, q string) ([]result.Result, error) {
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}

	emb, err := s.embed.Embed(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.repo.SearchKNN(ctx, emb.Embedding)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.FromContext(ctx).Debug("search completed",
		zap.Int("dimensions", len(emb.Embedding)),
		zap.Int("hits", len(results)),
	)
	return results, nil
}
