package mongodb

import "go.mongodb.org/mongo-driver/mongo"

// NewStoreForTest wraps an existing client (e.g. an mtest mock client).
func NewStoreForTest(client *mongo.Client, database string) *Store {
	return newStore(client, database)
}
