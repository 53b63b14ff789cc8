package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrInvalidID = errors.New("db: invalid object id")
)

// Op constants map to MongoDB command names for error context.
const (
	OpPing      = "ping"
	OpInsertOne = "insertOne"
	OpFind      = "find"
	OpUpdateOne = "updateOne"
	OpDeleteOne = "deleteOne"
	OpAggregate = "aggregate"
	OpDecode    = "decode"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
