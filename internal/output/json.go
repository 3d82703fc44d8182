// Package output emits translated rows as a single JSON array.
//
// The writer streams: each element is marshalled and written as it arrives,
// so memory use is constant in the number of rows.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMarshal marks an element that could not be serialized, as opposed to a
// failure of the underlying writer.
var ErrMarshal = errors.New("marshal row")

// ArrayWriter writes a JSON array to an io.Writer one element at a time.
//
// Write emits the opening bracket with the first element and a comma plus
// newline before every later one; Close emits the closing bracket. A writer
// that saw no elements still closes to a valid empty array.
type ArrayWriter struct {
	w      io.Writer
	pretty bool
	opened bool
	closed bool
	count  int
}

// NewArrayWriter returns an array writer targeting w. With pretty set,
// elements are indented; separators are the same either way.
func NewArrayWriter(w io.Writer, pretty bool) *ArrayWriter {
	return &ArrayWriter{w: w, pretty: pretty}
}

// Write appends one element to the array.
//
// A serialization failure is reported as ErrMarshal and leaves the stream
// without the element; any other error comes from the sink.
func (a *ArrayWriter) Write(v interface{}) error {
	var data []byte
	var err error
	if a.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	sep := "["
	if a.opened {
		sep = ",\n"
	}
	if _, err := io.WriteString(a.w, sep); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	a.opened = true
	if _, err := a.w.Write(data); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	a.count++
	return nil
}

// Count returns the number of elements written so far.
func (a *ArrayWriter) Count() int {
	return a.count
}

// Close terminates the array. It is safe to call more than once; only the
// first call writes.
func (a *ArrayWriter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	end := "]\n"
	if !a.opened {
		end = "[]\n"
	}
	if _, err := io.WriteString(a.w, end); err != nil {
		return fmt.Errorf("failed to close array: %w", err)
	}
	return nil
}
