package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first sheet of a workbook into a Dataset, producing
// the same shape as the CSV reader so the engine does not care which format
// the operator exported.
type XLSXReader struct{}

// NewXLSXReader creates an XLSXReader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read consumes the workbook. Row one is the header; fully empty rows are
// skipped and short rows are padded, as with CSV input.
func (xr *XLSXReader) Read(source string, r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheets
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	ds := &Dataset{Source: source, Columns: make([]string, len(records[0]))}
	for i, h := range records[0] {
		ds.Columns[i] = strings.TrimSpace(h)
	}

	for i, record := range records[1:] {
		row := RawRow{Line: i + 2, Fields: make(map[string]string, len(ds.Columns))}
		for j, col := range ds.Columns {
			if j < len(record) {
				row.Fields[col] = strings.TrimSpace(record[j])
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
