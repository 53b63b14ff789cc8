package domain

import "errors"

var (
	// ErrStoreUnavailable signals a failed document store operation.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidIdentifier signals an identifier the store cannot parse.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmptyQuery signals a search without query text.
	ErrEmptyQuery = errors.New("empty query")
)

// Cause returns the sentinel that classifies err, or "unknown".
// Used for logging only; callers never see it on the wire.
func Cause(err error) string {
	for _, s := range []error{
		ErrInvalidIdentifier,
		ErrEmptyQuery,
		ErrEmbeddingProviderError,
		ErrStoreUnavailable,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "unknown"
}
