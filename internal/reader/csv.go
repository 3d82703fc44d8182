package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource streams a comma-separated file whose first record is the header.
type CSVSource struct {
	file   *os.File
	rdr    *csv.Reader
	header []string
}

// OpenCSV opens a comma-separated file and reads its header record.
//
// Returns an error if the file cannot be opened or has no header; a file
// without a header has nothing translatable in it.
func OpenCSV(path string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	rdr := csv.NewReader(file)
	// Header and rows may legitimately disagree in width; translation
	// handles short and long records by position.
	rdr.FieldsPerRecord = -1

	header, err := rdr.Read()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	return &CSVSource{file: file, rdr: rdr, header: header}, nil
}

// Header returns the ordered column names from the first record.
func (s *CSVSource) Header() []string {
	return s.header
}

// Next returns the next record. A parse error on an individual record is
// reported wrapping ErrRow; the source stays usable and the caller can skip
// the record and continue.
func (s *CSVSource) Next() ([]string, error) {
	record, err := s.rdr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %w", ErrRow, err)
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return record, nil
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (s *CSVSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
