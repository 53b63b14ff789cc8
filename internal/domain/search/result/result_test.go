package result

import (
	"testing"

	"github.com/kailas-cloud/postdex/internal/domain/post"
)

func TestNew(t *testing.T) {
	title := "hello"
	p := post.Reconstruct("65f1c0ffee0000000000beef", &title, nil, []float64{0.1, 0.2})

	r := New(p, 0.95)

	got := r.Post()
	if got.ID() != "65f1c0ffee0000000000beef" {
		t.Errorf("Post().ID() = %q", got.ID())
	}
	if got.Title() == nil || *got.Title() != "hello" {
		t.Errorf("Post().Title() = %v", got.Title())
	}
	if r.Score() != 0.95 {
		t.Errorf("Score() = %f", r.Score())
	}
}
