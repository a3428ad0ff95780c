package fixedwidth

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Field names one column by its byte offsets, end exclusive.
type Field struct {
	Name       string
	Start, End int
}

// Layout is a documented set of fields for one fixed-width format.
// MinLength is the shortest line long enough to contain every field;
// anything shorter is a short line and gets skipped.
type Layout struct {
	Fields    []Field
	MinLength int
}

// Record is one parsed line, indexed by Field.Name with surrounding
// whitespace trimmed.
type Record map[string]string

// Reader streams Records from r one line at a time, never buffering
// the whole file.
type Reader struct {
	scanner   *bufio.Scanner
	layout    Layout
	ShortLines int // incremented for every line too short to parse
}

// NewReader wraps r for layout. The scanner buffer is sized generously
// since some layouts run past bufio's 64KB default line length on
// malformed input.
func NewReader(r io.Reader, layout Layout) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: s, layout: layout}
}

// Next returns the next parseable record, skipping and counting short
// lines until one long enough is found or the stream ends.
func (r *Reader) Next() (Record, bool, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if len(line) < r.layout.MinLength {
			r.ShortLines++
			continue
		}

		rec := make(Record, len(r.layout.Fields))
		for _, f := range r.layout.Fields {
			if f.End > len(line) {
				r.ShortLines++
				rec = nil
				break
			}
			rec[f.Name] = strings.TrimSpace(line[f.Start:f.End])
		}
		if rec == nil {
			continue
		}
		return rec, true, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("fixed-width scan failed: %w", err)
	}
	return nil, false, nil
}
