package batch

import "fmt"

// Kind classifies a unit failure.
//
// Two error tiers exist in the pipeline: discovery problems are logged and
// skipped before any unit exists, and malformed individual rows are skipped
// and counted during streaming. Everything enumerated here is the third
// case, fatal to its unit.
type Kind int

const (
	// KindInputNotFound means the input vanished between discovery and
	// open. Discovery confirmed it existed, so this is surfaced rather
	// than silently skipped.
	KindInputNotFound Kind = iota

	// KindHeaderRead means the header record could not be read; nothing
	// in the file can be translated without it.
	KindHeaderRead

	// KindInputRead means reading records failed mid-file for a reason
	// that is not an individual malformed row.
	KindInputRead

	// KindOutputWrite means the output file or one of its directories
	// could not be created or written.
	KindOutputWrite

	// KindSerialization means a translated row could not be marshalled.
	// This indicates a translator bug and is surfaced, never dropped.
	KindSerialization
)

// String returns the short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input not found"
	case KindHeaderRead:
		return "header read"
	case KindInputRead:
		return "input read"
	case KindOutputWrite:
		return "output write"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// UnitError is a failure local to one processing unit. It never aborts
// sibling units; the runner returns the first one observed after every unit
// has finished.
type UnitError struct {
	Kind  Kind
	Input string
	Err   error
}

// Error implements the error interface.
func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Input, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UnitError) Unwrap() error {
	return e.Err
}
