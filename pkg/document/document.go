package document

import "time"

// Version is the single supported wire format version. Documents declaring
// any other value are rejected with ErrUnsupportedVersion; there is no
// semantic versioning and no backward-compatibility window.
const Version = "1.0"

// Metrics carries timing instrumentation attached by Parse. It is not part of
// the wire format and is never logged by the parser itself.
type Metrics struct {
	ParseDuration time.Duration
}

// Document is the validated top-level parse artifact.
//
// A Document is constructed exactly once by Parse and never mutated
// afterwards: the layout tree is shared-read by the renderer and by the
// host's navigation and history logic, so it is safe to hand to multiple
// readers without locking. Re-rendering with different user-entered input
// values does not write into the tree; those values live in a host-owned map
// keyed by node ID.
type Document struct {
	// Version equals Version for every successfully parsed document.
	Version string

	// Layout is the root of the layout tree, always non-nil after Parse.
	Layout *LayoutNode

	// Opaque pass-throughs, not interpreted by the core.
	Requires      []string
	Metadata      map[string]any
	CSP           *string
	Manifest      map[string]any
	ServiceWorker *string

	// Extra holds unknown top-level wire keys (and known keys whose value had
	// an unexpected type), retained verbatim for round-tripping.
	Extra map[string]any

	// RawContent is the original input text, retained for diagnostics and
	// re-rendering. Not serialized.
	RawContent string

	// Metrics is attached by Parse. Not serialized.
	Metrics Metrics
}

// Title returns the metadata "title" when it is a string, or fallback.
// Metadata is an opaque map, so the type assertion is the only contract.
func (d *Document) Title(fallback string) string {
	if d == nil || d.Metadata == nil {
		return fallback
	}
	if t, ok := d.Metadata["title"].(string); ok && t != "" {
		return t
	}
	return fallback
}
