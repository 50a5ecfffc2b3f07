package ingest

import "strings"

// Canonical fallbacks used when the source cell is empty
const (
	DefaultUnit     = "each"
	DefaultLocation = "GENERAL"
)

// canonicalUnits maps equivalence keys to the canonical spelling. The legacy
// export writes the same unit half a dozen ways ("12 oz can", "12-oz can",
// "12 ounce can"); they all collapse onto one key.
var canonicalUnits = map[string]string{
	unitKey("12 oz can"):  "12 oz can",
	unitKey("36 oz can"):  "36 oz can",
	unitKey("dozen"):      "dozen",
	unitKey("1/2 dozen"):  "1/2 dozen",
	unitKey("bunch"):      "bunch",
	unitKey("each"):       "each",
	unitKey("1 lb bag"):   "1 lb bag",
	unitKey("5 lb bag"):   "5 lb bag",
	unitKey("1 gal jug"):  "1 gal jug",
	unitKey("quart"):      "quart",
	unitKey("pint"):       "pint",
	unitKey("case of 12"): "case of 12",
	unitKey("case of 24"): "case of 24",
}

// unitWords rewrites spelled-out measure words onto their short forms before
// the key is computed, so "12 ounce can" and "12 oz can" collide.
var unitWords = map[string]string{
	"ounce":   "oz",
	"ounces":  "oz",
	"pound":   "lb",
	"pounds":  "lb",
	"lbs":     "lb",
	"gallon":  "gal",
	"gallons": "gal",
	"dz":      "dozen",
}

// unitKey computes the case-, whitespace- and hyphen-insensitive equivalence
// key for a unit string.
func unitKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(s)
	for i, w := range words {
		if short, ok := unitWords[w]; ok {
			words[i] = short
		}
	}
	return strings.Join(words, "")
}

// NormalizeUnit maps a unit-of-measure string onto its canonical form. known
// is false for variants outside the table; those pass through trimmed but
// otherwise unchanged and should be logged for review. Empty input maps to
// the default unit. Never fails.
func NormalizeUnit(s string) (canonical string, known bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultUnit, true
	}
	if c, ok := canonicalUnits[unitKey(s)]; ok {
		return c, true
	}
	return s, false
}

// NormalizeLocation canonicalizes a storage-location code: trimmed and
// upper-cased, empty mapped to the default location. Never fails.
func NormalizeLocation(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultLocation
	}
	return s
}
