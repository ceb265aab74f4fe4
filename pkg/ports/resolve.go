package ports

import "context"

// Resolver maps a local document key (the path component of a file:/// URL)
// to a raw document body. Implementations serve builtin documents from memory
// or look keys up in an on-disk library.
type Resolver interface {
	// Resolve returns the body for key, or ErrNotFound when no document
	// exists under that key.
	Resolve(ctx context.Context, key string) (string, error)
}
