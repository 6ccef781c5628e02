package phylonj

import "fmt"

// ErrorKind classifies a BuildError the way callers are expected to
// branch on: InputFormat and InputValue are the caller's fault (bad
// file, rank too small); InternalInvariant means the engine itself
// found a state it should never be in.
type ErrorKind string

const (
	// InputFormat covers unreadable files, non-numeric tokens where a
	// number was required, and a declared rank that disagrees with the
	// number of rows actually present.
	InputFormat ErrorKind = "input_format"

	// InputValue covers structurally valid input that is numerically
	// unusable, such as N < 3.
	InputValue ErrorKind = "input_value"

	// InternalInvariant covers a bug surfaced at runtime: it is returned
	// when the Newick writer's cycle guard trips. The BoundingBIONJ
	// engine does not check its cluster totals and never returns it.
	InternalInvariant ErrorKind = "internal_invariant"
)

// BuildError is the error type returned for failures in loading or
// parsing a distance matrix, parsing Newick, creating the output file,
// and the Newick writer's cycle guard. Config validation errors from
// BuildTree/BuildTreeRapid and write errors from the writer passed to
// WriteNewick are returned as plain errors. Use errors.As to recover
// Kind and the underlying cause.
type BuildError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("phylonj: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("phylonj: %s: %s", e.Kind, e.Msg)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string, err error) *BuildError {
	return &BuildError{Kind: kind, Msg: msg, Err: err}
}
