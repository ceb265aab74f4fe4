// Package render turns a parsed layout tree into plain text on a Surface.
//
// The walk is deterministic and side-effect free: the same document always
// produces the same lines, and nothing in the tree is mutated. Styling is
// deliberately out of scope; hosts that want color wrap the Surface or
// post-process lines. Failures are confined to the node that caused them so
// a malformed subtree degrades to a one-line marker instead of a blank page.
package render
