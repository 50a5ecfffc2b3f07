package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order. The legacy export writes US-style dates,
// sometimes zero-padded and sometimes not; ISO dates appear in hand-edited
// files.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
}

// ParseDate parses a date field from the legacy export
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseMoney parses a currency amount, tolerating a leading dollar sign and
// thousands separators.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", s)
	}
	return d, nil
}

// ParseInt parses an integer field, tolerating surrounding whitespace and a
// trailing ".0" that spreadsheet exports sometimes add.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, fmt.Errorf("empty integer")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable integer %q", s)
	}
	return n, nil
}
