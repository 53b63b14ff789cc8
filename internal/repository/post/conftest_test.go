package post

import (
	"context"

	"github.com/kailas-cloud/postdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	insertOneFn  func(ctx context.Context, collection string, doc any) (string, error)
	findAllFn    func(ctx context.Context, collection string, sort db.Sort, out any) error
	findByIDFn   func(ctx context.Context, collection, id string, out any) error
	updateByIDFn func(ctx context.Context, collection, id string, set any) (int64, error)
	deleteByIDFn func(ctx context.Context, collection, id string) (int64, error)
}

func (m *mockStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	if m.insertOneFn != nil {
		return m.insertOneFn(ctx, collection, doc)
	}
	return "", nil
}

func (m *mockStore) FindAll(ctx context.Context, collection string, sort db.Sort, out any) error {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, collection, sort, out)
	}
	return nil
}

func (m *mockStore) FindByID(ctx context.Context, collection, id string, out any) error {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, collection, id, out)
	}
	return nil
}

func (m *mockStore) UpdateByID(ctx context.Context, collection, id string, set any) (int64, error) {
	if m.updateByIDFn != nil {
		return m.updateByIDFn(ctx, collection, id, set)
	}
	return 0, nil
}

func (m *mockStore) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, collection, id)
	}
	return 0, nil
}

func fill(out any, docs ...postDoc) {
	*(out.(*[]postDoc)) = docs
}

func strPtr(s string) *string { return &s }
