package db

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpFind, Err: ErrInvalidID}

	if err.Error() != "find: db: invalid object id" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidID) {
		t.Error("errors.Is(err, ErrInvalidID) = false")
	}

	wrapped := fmt.Errorf("find posts: %w", err)
	var dbErr *Error
	if !errors.As(wrapped, &dbErr) {
		t.Fatal("errors.As failed")
	}
	if dbErr.Op != OpFind {
		t.Errorf("Op = %q, want %q", dbErr.Op, OpFind)
	}
}
