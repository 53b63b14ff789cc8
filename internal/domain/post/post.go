package post

// Post is the post aggregate (immutable value object).
// Title and Body are optional: nil means the field is absent from the stored document.
type Post struct {
	id        string
	title     *string
	body      *string
	embedding []float64
}

// New creates a Post that has not been stored yet. The store assigns the ID.
func New(title, body *string) Post {
	return Post{title: cloneString(title), body: cloneString(body)}
}

// Reconstruct creates a Post from stored fields (storage hydration).
func Reconstruct(id string, title, body *string, embedding []float64) Post {
	return Post{id: id, title: title, body: body, embedding: embedding}
}

// ID returns the store-assigned identifier, empty before the first insert.
func (p *Post) ID() string { return p.id }

// Title returns the title, or nil if absent.
func (p *Post) Title() *string { return p.title }

// Body returns the body, or nil if absent.
func (p *Post) Body() *string { return p.body }

// Embedding returns the stored embedding vector. Populated out of band.
func (p *Post) Embedding() []float64 { return p.embedding }

// WithID returns a copy carrying the given identifier.
func (p *Post) WithID(id string) Post {
	return Post{id: id, title: p.title, body: p.body, embedding: p.embedding}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
