package ports

import "errors"

var (
	// ErrNotFound reports that a store or resolver has no entry for the key.
	ErrNotFound = errors.New("not found")

	// ErrNoDocument reports that a tab has no loaded document to operate on.
	ErrNoDocument = errors.New("no document loaded")
)
