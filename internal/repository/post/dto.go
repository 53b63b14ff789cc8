package post

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dompost "github.com/kailas-cloud/postdex/internal/domain/post"
	"github.com/kailas-cloud/postdex/internal/domain/post/patch"
)

// postDoc is the stored shape of a post. Absent title/body stay absent on insert.
type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     *string            `bson:"title,omitempty"`
	Body      *string            `bson:"body,omitempty"`
	Embedding []float64          `bson:"plot_embedding,omitempty"`
}

// newPostDoc builds the insert document. The embedding is never written here.
func newPostDoc(p *dompost.Post) postDoc {
	return postDoc{Title: p.Title(), Body: p.Body()}
}

func (d *postDoc) toDomain() dompost.Post {
	id := ""
	if !d.ID.IsZero() {
		id = d.ID.Hex()
	}
	return dompost.Reconstruct(id, d.Title, d.Body, d.Embedding)
}

func toDomainList(docs []postDoc) []dompost.Post {
	out := make([]dompost.Post, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out
}

// buildSet converts a merge patch into the $set operand.
// Only fields present in the patch appear, so omitted fields keep their stored values.
func buildSet(p patch.Patch) bson.D {
	set := bson.D{}
	if t := p.Title(); t != nil {
		set = append(set, bson.E{Key: "title", Value: *t})
	}
	if b := p.Body(); b != nil {
		set = append(set, bson.E{Key: "body", Value: *b})
	}
	return set
}
