package pager

import "errors"

var (
	// ErrInvalidCursor indicates a malformed or non-decodable cursor token.
	// This is a client input error, not a backend failure.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoSearchColumns indicates that a search was requested against a
	// resource that declared no searchable columns. This is an integration
	// error and should never be retried.
	ErrNoSearchColumns = errors.New("no search columns configured")
)
