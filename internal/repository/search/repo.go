package search

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/postdex/internal/db"
	"github.com/kailas-cloud/postdex/internal/domain"
	"github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/search/result"
)

const scoreField = "score"

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery, out any) error
}

// Options describes the shape of the vector search delegated to the store.
type Options struct {
	Collection string
	Index      string
	Path       string
	K          int
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
	opts  Options
}

// New creates a search repository.
func New(s store, opts Options) *Repo {
	return &Repo{store: s, opts: opts}
}

// hitDoc is a stored post plus the score added by the pipeline.
type hitDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     *string            `bson:"title,omitempty"`
	Body      *string            `bson:"body,omitempty"`
	Embedding []float64          `bson:"plot_embedding,omitempty"`
	Score     float64            `bson:"score"`
}

// SearchKNN returns the store's nearest neighbours of vector, in store order.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32) ([]result.Result, error) {
	q := &db.KNNQuery{
		Collection: r.opts.Collection,
		IndexName:  r.opts.Index,
		Path:       r.opts.Path,
		Vector:     vector,
		K:          r.opts.K,
		ScoreField: scoreField,
	}

	var hits []hitDoc
	if err := r.store.SearchKNN(ctx, q, &hits); err != nil {
		return nil, fmt.Errorf("search knn %s: %w: %w", r.opts.Collection, domain.ErrStoreUnavailable, err)
	}

	out := make([]result.Result, len(hits))
	for i := range hits {
		h := &hits[i]
		id := ""
		if !h.ID.IsZero() {
			id = h.ID.Hex()
		}
		out[i] = result.New(post.Reconstruct(id, h.Title, h.Body, h.Embedding), h.Score)
	}
	return out, nil
}
