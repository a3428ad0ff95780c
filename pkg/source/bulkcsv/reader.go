package bulkcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Record is one row, indexed by the header's column name rather than
// position, so mapper code reads by name and stays stable if the
// source reorders columns.
type Record map[string]string

// Reader pulls records one at a time from a pipe-delimited stream. The
// header row (first line) defines field names; every subsequent row is
// read and returned on demand via Next, never buffered in bulk.
type Reader struct {
	csv    *csv.Reader
	header []string
}

// NewReader wraps r, reading the header row immediately.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '|'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // tolerate ragged rows rather than aborting the stream

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return &Reader{csv: cr, header: header}, nil
}

// Next pulls the next record. ok is false at clean EOF; err is non-nil
// only for a malformed row, which the caller should count and skip
// rather than abort the whole stream on.
func (r *Reader) Next() (rec Record, ok bool, err error) {
	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("malformed row: %w", err)
	}

	rec = make(Record, len(r.header))
	for i, col := range r.header {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec, true, nil
}
