package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/postdex/internal/db"
	"github.com/kailas-cloud/postdex/internal/metrics"
)

// SearchKNN runs an Atlas Search knnBeta query and decodes the hits into out.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveStoreOp(db.OpAggregate, q.Collection, start, err) }()

	if q.Collection == "" {
		return &db.Error{Op: db.OpAggregate, Err: errors.New("collection is required")}
	}

	cur, err := s.coll(q.Collection).Aggregate(ctx, knnPipeline(q))
	if err != nil {
		return &db.Error{Op: db.OpAggregate, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpDecode, Err: err}
	}
	return nil
}

// knnPipeline builds the $search stage, plus an $addFields stage exposing the score.
// A nil vector is forwarded as-is; the server rejects it.
func knnPipeline(q *db.KNNQuery) mongo.Pipeline {
	var vector bson.A
	if q.Vector != nil {
		vector = make(bson.A, len(q.Vector))
		for i, v := range q.Vector {
			vector[i] = float64(v)
		}
	}

	search := bson.D{
		{Key: "index", Value: q.IndexName},
		{Key: "knnBeta", Value: bson.D{
			{Key: "vector", Value: vector},
			{Key: "path", Value: q.Path},
			{Key: "k", Value: q.K},
		}},
	}

	pipeline := mongo.Pipeline{{{Key: "$search", Value: search}}}
	if q.ScoreField != "" {
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.D{
			{Key: q.ScoreField, Value: bson.D{{Key: "$meta", Value: "searchScore"}}},
		}}})
	}
	return pipeline
}
