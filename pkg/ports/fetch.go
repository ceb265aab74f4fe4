package ports

import (
	"context"
	"fmt"
)

// Fetcher retrieves the raw body of a document over the network.
// Fetch returns the complete body or a typed error, never a partial body.
// Failures are reported as *NetworkError; the engine never retries.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// NetworkError reports a failed fetch. Status is the HTTP status code when
// the server answered with a non-success code, and zero when the failure
// happened below HTTP (DNS, dial, timeout).
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }
