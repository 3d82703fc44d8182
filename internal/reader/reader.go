// Package reader opens tabular input files and streams their records.
//
// Two formats are supported: comma-separated text (the default) and Apache
// Parquet. Both are exposed through the Source interface, so the conversion
// pipeline does not care which one it is reading from.
package reader

import (
	"errors"
	"path/filepath"
	"strings"
)

// Source streams one tabular file: a header followed by records.
type Source interface {
	// Header returns the ordered column names read ahead of the records.
	Header() []string

	// Next returns the next record, or io.EOF when the file is exhausted.
	// A record may legitimately have fewer or more fields than the header.
	// A non-EOF error wrapping ErrRow is recoverable: the record is lost
	// but the source remains usable. Any other error is terminal.
	Next() ([]string, error)

	// Close releases the underlying file handle. Safe to call more than
	// once.
	Close() error
}

// ErrRow marks a single malformed record. The caller may skip it and keep
// reading.
var ErrRow = errors.New("malformed record")

// Open opens path with a format chosen by extension: ".parquet" gets the
// parquet source, anything else the CSV source.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return OpenParquet(path)
	}
	return OpenCSV(path)
}
