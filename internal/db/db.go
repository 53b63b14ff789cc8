package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	Searcher
	Close(ctx context.Context)
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sort orders a FindAll result by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// DocumentStore provides single-document CRUD addressed by the store's native ID.
// IDs cross this boundary as strings; implementations reject unparseable ones with ErrInvalidID.
type DocumentStore interface {
	InsertOne(ctx context.Context, collection string, doc any) (id string, err error)
	FindAll(ctx context.Context, collection string, sort Sort, out any) error
	FindByID(ctx context.Context, collection, id string, out any) error
	UpdateByID(ctx context.Context, collection, id string, set any) (matched int64, err error)
	DeleteByID(ctx context.Context, collection, id string) (deleted int64, err error)
}

// Searcher provides vector similarity search.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery, out any) error
}
