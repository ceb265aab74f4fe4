package document

import (
	"errors"
	"fmt"
)

// Failure kinds carried by FormatError. Match with errors.Is.
var (
	// ErrSyntax marks input that is not well-formed JSON.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedVersion marks a document whose version key is missing or
	// not equal to the supported literal.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrSchema marks a structural violation: wrong top-level shape, missing
	// layout, a node that is not an object or lacks a type, a non-object
	// action, or non-array children.
	ErrSchema = errors.New("schema violation")
)

// FormatError is the parse-failure taxonomy. A malformed document never
// produces a partial Document: Parse returns either a valid tree or a
// *FormatError, so callers cannot render input that did not validate.
type FormatError struct {
	// Kind is one of ErrSyntax, ErrUnsupportedVersion, ErrSchema.
	Kind error

	// Path locates the offending node for schema violations, dotted and
	// indexed from the root, e.g. "layout.children[2].action". Empty for
	// document-level failures.
	Path string

	// Message is the human-readable reason.
	Message string

	// Err is the underlying cause, when any (e.g. the json decode error).
	Err error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v at %s: %s", e.Kind, e.Path, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind sentinel and the wrapped cause to errors.Is
// and errors.As.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func syntaxError(err error) *FormatError {
	return &FormatError{Kind: ErrSyntax, Message: "invalid document text", Err: err}
}

func versionError(got any) *FormatError {
	return &FormatError{
		Kind:    ErrUnsupportedVersion,
		Message: fmt.Sprintf("only version %q is supported, got %v", Version, got),
	}
}

func schemaError(path, message string) *FormatError {
	return &FormatError{Kind: ErrSchema, Path: path, Message: message}
}
