package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/postdex/internal/db"
	"github.com/kailas-cloud/postdex/internal/domain"
	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/post/patch"
)

// store is the consumer interface for posts (ISP).
type store interface {
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	FindAll(ctx context.Context, collection string, sort db.Sort, out any) error
	FindByID(ctx context.Context, collection, id string, out any) error
	UpdateByID(ctx context.Context, collection, id string, set any) (int64, error)
	DeleteByID(ctx context.Context, collection, id string) (int64, error)
}

// Repo implements usecase/post.Repository.
type Repo struct {
	store      store
	collection string
}

// New creates a post repository over the given collection.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// List returns all posts, newest first (ObjectIDs grow with insertion time).
func (r *Repo) List(ctx context.Context) ([]dompost.Post, error) {
	var docs []postDoc
	if err := r.store.FindAll(ctx, r.collection, db.Sort{Field: "_id", Desc: true}, &docs); err != nil {
		return nil, classify("list posts", err)
	}
	return toDomainList(docs), nil
}

// Get returns the posts matching id: one element, or none when nothing matches.
func (r *Repo) Get(ctx context.Context, id string) ([]dompost.Post, error) {
	var docs []postDoc
	if err := r.store.FindByID(ctx, r.collection, id, &docs); err != nil {
		return nil, classify("get post "+id, err)
	}
	return toDomainList(docs), nil
}

// Create inserts p and returns it with the store-assigned ID.
func (r *Repo) Create(ctx context.Context, p *dompost.Post) (dompost.Post, error) {
	id, err := r.store.InsertOne(ctx, r.collection, newPostDoc(p))
	if err != nil {
		return dompost.Post{}, classify("insert post", err)
	}
	return p.WithID(id), nil
}

// Update merges p into the post with the given id. Returns whether a post matched.
func (r *Repo) Update(ctx context.Context, id string, p patch.Patch) (bool, error) {
	matched, err := r.store.UpdateByID(ctx, r.collection, id, buildSet(p))
	if err != nil {
		return false, classify("update post "+id, err)
	}
	return matched > 0, nil
}

// Delete removes the post with the given id. Returns whether a post was deleted.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.store.DeleteByID(ctx, r.collection, id)
	if err != nil {
		return false, classify("delete post "+id, err)
	}
	return deleted > 0, nil
}

// classify maps store errors onto domain sentinels, keeping the original in the chain.
func classify(op string, err error) error {
	if errors.Is(err, db.ErrInvalidID) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidIdentifier, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
