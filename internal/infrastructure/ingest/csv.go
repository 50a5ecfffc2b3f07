package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CSVReader reads the legacy export into a Dataset. The file is expected to
// be UTF-8 (an optional BOM is stripped) with a single header row.
type CSVReader struct {
	delimiter rune
}

// CSVOption is a functional option for CSVReader configuration
type CSVOption func(*CSVReader)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) CSVOption {
	return func(r *CSVReader) {
		r.delimiter = d
	}
}

// NewCSVReader creates a CSVReader
func NewCSVReader(opts ...CSVOption) *CSVReader {
	r := &CSVReader{delimiter: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read consumes the whole input and returns the dataset. Fully empty rows are
// skipped; short rows are padded with empty cells so that column absence and
// empty cells read identically downstream.
func (cr *CSVReader) Read(source string, r io.Reader) (*Dataset, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	// UTF-8 BOM: 0xEF 0xBB 0xBF
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}
	if err := checkUTF8(buf); err != nil {
		return nil, err
	}

	reader := csv.NewReader(buf)
	reader.Comma = cr.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	ds := &Dataset{Source: source, Columns: make([]string, len(header))}
	for i, h := range header {
		ds.Columns[i] = strings.TrimSpace(h)
	}

	line := 1 // header is line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", line, err)
		}

		row := RawRow{Line: line, Fields: make(map[string]string, len(ds.Columns))}
		for i, col := range ds.Columns {
			if i < len(record) {
				row.Fields[col] = strings.TrimSpace(record[i])
			} else {
				row.Fields[col] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// checkUTF8 peeks ahead and rejects input that is not valid UTF-8
func checkUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read input for encoding check: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	// Avoid flagging a multi-byte rune cut off by the peek window.
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0; i++ {
			if r, _ := utf8.DecodeLastRune(content); r != utf8.RuneError {
				break
			}
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}
