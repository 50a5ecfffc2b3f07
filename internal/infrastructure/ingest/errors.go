package ingest

import (
	"errors"
	"fmt"
)

// Quality issue codes recorded during a run
const (
	CodeAddressUnparsed  = "ADDRESS_UNPARSED"
	CodeUnknownUnit      = "UNKNOWN_UNIT"
	CodeMalformedRow     = "MALFORMED_ROW"
	CodeBadItemNumber    = "BAD_ITEM_NUMBER"
	CodeBadQuantity      = "BAD_QUANTITY"
	CodeBadAmount        = "BAD_AMOUNT"
	CodeBadDate          = "BAD_DATE"
	CodeBadCustomerID    = "BAD_CUSTOMER_ID"
	CodeEmptyVendorName  = "EMPTY_VENDOR_NAME"
	CodeEmptyProductName = "EMPTY_PRODUCT_NAME"
)

// Reader errors
var (
	ErrEmptyFile       = errors.New("input file is empty")
	ErrInvalidEncoding = errors.New("input file is not valid UTF-8")
	ErrMissingHeader   = errors.New("input file missing header row")
	ErrNoSheets        = errors.New("workbook contains no sheets")
)

// RowIssue is a data-quality finding tied to a source row
type RowIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i RowIssue) String() string {
	if i.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", i.Row, i.Column, i.Message)
	}
	return fmt.Sprintf("row %d: %s", i.Row, i.Message)
}

// QualityLog accumulates non-fatal findings for one run: warnings from the
// parser/normalizer/classifier and per-row resolution failures. Neither kind
// aborts the run; both surface in the final report.
type QualityLog struct {
	warnings   []RowIssue
	failures   []RowIssue
	maxEntries int
	total      int
}

// NewQualityLog creates a QualityLog retaining at most maxEntries findings
// per kind; the total count is tracked regardless.
func NewQualityLog(maxEntries int) *QualityLog {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &QualityLog{maxEntries: maxEntries}
}

// Warn records a data-quality warning (address ambiguity, unknown unit, ...)
func (q *QualityLog) Warn(row int, column, code, message string) {
	q.total++
	if len(q.warnings) < q.maxEntries {
		q.warnings = append(q.warnings, RowIssue{Row: row, Column: column, Code: code, Message: message})
	}
}

// FailRow records a resolution failure: the row's contribution to one entity
// class is dropped while the rest of the row is still processed.
func (q *QualityLog) FailRow(row int, column, code, message string) {
	q.total++
	if len(q.failures) < q.maxEntries {
		q.failures = append(q.failures, RowIssue{Row: row, Column: column, Code: code, Message: message})
	}
}

// Warnings returns the recorded warnings
func (q *QualityLog) Warnings() []RowIssue {
	return q.warnings
}

// Failures returns the recorded resolution failures
func (q *QualityLog) Failures() []RowIssue {
	return q.failures
}

// Total returns the number of findings recorded, including dropped ones
func (q *QualityLog) Total() int {
	return q.total
}

// Messages renders all findings, warnings first, as report lines
func (q *QualityLog) Messages() []string {
	out := make([]string, 0, len(q.warnings)+len(q.failures))
	for _, w := range q.warnings {
		out = append(out, w.String())
	}
	for _, f := range q.failures {
		out = append(out, f.String())
	}
	return out
}
