package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ParquetSource streams a parquet file as header plus string records, so
// parquet input flows through the same inference policy as CSV input.
//
// It maintains both an OS file handle and a parquet row reader to enable
// proper resource cleanup.
type ParquetSource struct {
	file   *os.File
	rows   *parquet.Reader
	header []string
}

// OpenParquet opens a parquet file and derives the header from its schema.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func OpenParquet(path string) (*ParquetSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, f.Name())
	}

	return &ParquetSource{
		file:   file,
		rows:   parquet.NewReader(pqFile),
		header: header,
	}, nil
}

// Header returns the schema-ordered column names.
func (s *ParquetSource) Header() []string {
	return s.header
}

// Next reads one row and renders its values as strings in header order.
// Missing columns render as empty strings, like a short CSV record.
func (s *ParquetSource) Next() ([]string, error) {
	row := make(map[string]interface{})
	if err := s.rows.Read(&row); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	record := make([]string, len(s.header))
	for i, name := range s.header {
		record[i] = formatValue(row[name])
	}
	return record, nil
}

// Close closes the parquet reader and releases associated resources. It is
// safe to call Close multiple times.
func (s *ParquetSource) Close() error {
	if s.file == nil {
		return nil
	}
	_ = s.rows.Close()
	err := s.file.Close()
	s.file = nil
	return err
}

// formatValue converts a parquet value to its string form.
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
