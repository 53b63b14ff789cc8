package post

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/post/patch"
	"github.com/kailas-cloud/postdex/internal/logger"
)

// Service handles post CRUD.
type Service struct {
	repo Repository
}

// New creates a post service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]dompost.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get returns the post with the given id as a zero- or one-element slice.
// A well-formed id that matches nothing is not an error.
func (s *Service) Get(ctx context.Context, id string) ([]dompost.Post, error) {
	posts, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return posts, nil
}

// Create stores a new post with whichever of title and body were supplied.
func (s *Service) Create(ctx context.Context, title, body *string) (dompost.Post, error) {
	p := dompost.New(title, body)
	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		return dompost.Post{}, fmt.Errorf("create post: %w", err)
	}
	logger.FromContext(ctx).Debug("post created", zap.String("post_id", created.ID()))
	return created, nil
}

// Update merges the non-empty fields among title and body into the stored post.
// Empty strings are treated as absent, so a field cannot be cleared through Update.
func (s *Service) Update(ctx context.Context, id string, title, body *string) error {
	matched, err := s.repo.Update(ctx, id, patch.New(title, body))
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if !matched {
		logger.FromContext(ctx).Debug("update matched no post", zap.String("post_id", id))
	}
	return nil
}

// Delete removes the post with the given id. Deleting a missing post succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		logger.FromContext(ctx).Debug("delete matched no post", zap.String("post_id", id))
	}
	return nil
}
