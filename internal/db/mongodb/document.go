package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/postdex/internal/db"
	"github.com/kailas-cloud/postdex/internal/metrics"
)

// InsertOne inserts doc and returns the hex form of its _id.
// The driver generates an ObjectID when doc carries none.
func (s *Store) InsertOne(ctx context.Context, collection string, doc any) (id string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpInsertOne, collection, start, err) }()

	res, err := s.coll(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", &db.Error{Op: db.OpInsertOne, Err: err}
	}

	switch v := res.InsertedID.(type) {
	case primitive.ObjectID:
		return v.Hex(), nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// FindAll decodes every document of the collection into out (a pointer to a slice).
func (s *Store) FindAll(ctx context.Context, collection string, sort db.Sort, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpFind, collection, start, err) }()

	opts := options.Find()
	if sort.Field != "" {
		dir := 1
		if sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}

	return s.find(ctx, collection, bson.D{}, out, opts)
}

// FindByID decodes the documents matching id into out (a pointer to a slice).
// A missing document leaves out empty; it is not an error.
func (s *Store) FindByID(ctx context.Context, collection, id string, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpFind, collection, start, err) }()

	oid, err := parseID(db.OpFind, id)
	if err != nil {
		return err
	}
	return s.find(ctx, collection, bson.D{{Key: "_id", Value: oid}}, out, options.Find())
}

// UpdateByID applies a $set of the given fields to at most one document.
func (s *Store) UpdateByID(ctx context.Context, collection, id string, set any) (matched int64, err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpUpdateOne, collection, start, err) }()

	oid, err := parseID(db.OpUpdateOne, id)
	if err != nil {
		return 0, err
	}

	res, err := s.coll(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return 0, &db.Error{Op: db.OpUpdateOne, Err: err}
	}
	return res.MatchedCount, nil
}

// DeleteByID removes at most one document.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) (deleted int64, err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpDeleteOne, collection, start, err) }()

	oid, err := parseID(db.OpDeleteOne, id)
	if err != nil {
		return 0, err
	}

	res, err := s.coll(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, &db.Error{Op: db.OpDeleteOne, Err: err}
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, collection string, filter bson.D, out any, opts *options.FindOptions) error {
	cur, err := s.coll(collection).Find(ctx, filter, opts)
	if err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpDecode, Err: err}
	}
	return nil
}

func parseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &db.Error{Op: op, Err: fmt.Errorf("%w %q: %w", db.ErrInvalidID, id, err)}
	}
	return oid, nil
}
