/*
Package document contains the core data model of the Nova document format.

It defines the parsed artifacts (Document, LayoutNode, Action), the strict
parser that turns untrusted JSON into a validated layout tree, the wire-format
serializer, and the deterministic action-catalog walk. This package is kept
pure: no I/O, no logging, no persistence, following Hexagonal Architecture
principles. Collaborators (fetching, storage, surfaces) live behind the
interfaces in pkg/ports.

# Key Entities

  - Document: the validated top-level artifact (version + layout tree + opaque
    metadata/policy pass-throughs).
  - LayoutNode: one node of the recursive declarative UI tree, a single struct
    with a kind discriminator and a superset of optional fields.
  - Action: a flat descriptor of one user-triggerable intent, explicit or
    synthesized.
  - FormatError: the parse-failure taxonomy (syntax, unsupported version,
    schema with a node path).

Parsing is strict about the handful of REQUIRED fields (version, layout, node
type, action/children shape) and deliberately permissive about everything
else: unknown or wrong-typed optional fields are carried through verbatim so
renderer-specific extensions survive a parse/serialize round trip.
*/
package document
