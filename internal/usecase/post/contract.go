package post

import (
	"context"

	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/post/patch"
)

// Repository defines the storage contract for posts.
type Repository interface {
	List(ctx context.Context) ([]dompost.Post, error)
	Get(ctx context.Context, id string) ([]dompost.Post, error)
	Create(ctx context.Context, p *dompost.Post) (dompost.Post, error)
	Update(ctx context.Context, id string, p patch.Patch) (matched bool, err error)
	Delete(ctx context.Context, id string) (deleted bool, err error)
}
