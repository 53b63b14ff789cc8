package chi

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postdex/internal/domain"
	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/post/patch"
	"github.com/kailas-cloud/postdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/postdex/internal/usecase/health"
	postuc "github.com/kailas-cloud/postdex/internal/usecase/post"
	searchuc "github.com/kailas-cloud/postdex/internal/usecase/search"
)

// memStore is an in-memory post store that parses identifiers like MongoDB does.
type memStore struct {
	mu    sync.Mutex
	order []string
	posts map[string]dompost.Post
	err   error
}

func newMemStore() *memStore {
	return &memStore{posts: make(map[string]dompost.Post)}
}

func (m *memStore) parse(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidIdentifier
	}
	return nil
}

func (m *memStore) List(_ context.Context) ([]dompost.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]dompost.Post, 0, len(m.order))
	for _, id := range slices.Backward(m.order) {
		out = append(out, m.posts[id])
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id string) ([]dompost.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if err := m.parse(id); err != nil {
		return nil, err
	}
	p, ok := m.posts[id]
	if !ok {
		return []dompost.Post{}, nil
	}
	return []dompost.Post{p}, nil
}

func (m *memStore) Create(_ context.Context, p *dompost.Post) (dompost.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return dompost.Post{}, m.err
	}
	created := p.WithID(primitive.NewObjectID().Hex())
	m.posts[created.ID()] = created
	m.order = append(m.order, created.ID())
	return created, nil
}

func (m *memStore) Update(_ context.Context, id string, pt patch.Patch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if err := m.parse(id); err != nil {
		return false, err
	}
	p, ok := m.posts[id]
	if !ok {
		return false, nil
	}
	title, body := p.Title(), p.Body()
	if pt.Title() != nil {
		title = pt.Title()
	}
	if pt.Body() != nil {
		body = pt.Body()
	}
	m.posts[id] = dompost.Reconstruct(id, title, body, p.Embedding())
	return true, nil
}

func (m *memStore) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if err := m.parse(id); err != nil {
		return false, err
	}
	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	delete(m.posts, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return true, nil
}

func (m *memStore) Ping(_ context.Context) error { return m.err }

// SearchKNN scores every stored post by a fixed score table.
func (m *memStore) SearchKNN(_ context.Context, vector []float32) ([]result.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]result.Result, 0, len(m.order))
	for i, id := range m.order {
		out = append(out, result.New(m.posts[id], float64(vector[0])/float64(i+1)))
	}
	return out, nil
}

type fakeEmbedder struct {
	vector []float32
	tokens int
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	domain.UsageFromContext(ctx).AddTokens(f.tokens)
	return domain.EmbeddingResult{Embedding: f.vector, TotalTokens: f.tokens}, nil
}

func (f *fakeEmbedder) HealthCheck(_ context.Context) error { return f.err }

type testEnv struct {
	store    *memStore
	embedder *fakeEmbedder
	server   *Server
}

func newTestEnv() *testEnv {
	store := newMemStore()
	emb := &fakeEmbedder{vector: []float32{1, 0}, tokens: 3}
	srv := NewServer(
		postuc.New(store),
		searchuc.New(store, emb),
		healthuc.New(store, emb),
	)
	return &testEnv{store: store, embedder: emb, server: srv}
}

func (e *testEnv) router() *routerUnderTest {
	return &routerUnderTest{h: NewRouter(e.server, zap.NewNop(), RouterConfig{})}
}
