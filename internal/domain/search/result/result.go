package result

import "github.com/kailas-cloud/postdex/internal/domain/post"

// Result is a single search hit.
type Result struct {
	post  post.Post
	score float64
}

// New creates a search result.
func New(p post.Post, score float64) Result {
	return Result{post: p, score: score}
}

// Post returns the matched post as stored.
func (r *Result) Post() post.Post { return r.post }

// Score returns the store's relevance score.
func (r *Result) Score() float64 { return r.score }
