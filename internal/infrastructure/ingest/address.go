package ingest

import (
	"regexp"
	"strings"
)

// Address is a postal address decomposed from legacy free text. Fields may be
// empty when the source text could not be fully decomposed; in that case the
// undecomposed remainder is kept in Street.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Complete reports whether city, state and zip were all recognized
func (a Address) Complete() bool {
	return a.City != "" && a.State != "" && a.Zip != ""
}

// String renders the address in the canonical "Street, City, ST ZIP" form.
// Parsing the rendered form yields the same structure back.
func (a Address) String() string {
	var parts []string
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	tail := strings.TrimSpace(a.State + " " + a.Zip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

var (
	// "IL 55446" or "IL 55446-1234"
	stateZipRe = regexp.MustCompile(`^([A-Za-z]{2})\s+(\d{5})(?:-\d{4})?$`)
	// "Rt. 17 Evansville IL 55446" collapsed into one comma segment
	cityStateZipRe = regexp.MustCompile(`^(.*?),?\s+([A-Za-z]{2})\s+(\d{5})(?:-\d{4})?$`)
)

// ParseAddress decomposes free-form address text. It never fails: whatever
// cannot be attributed to city/state/zip stays in Street, and the boolean
// reports whether the decomposition was complete. Same input, same output.
func ParseAddress(s string) (Address, bool) {
	segs := splitSegments(s)
	if len(segs) == 0 {
		return Address{}, false
	}

	var addr Address
	last := segs[len(segs)-1]
	if m := stateZipRe.FindStringSubmatch(last); m != nil {
		addr.State = strings.ToUpper(m[1])
		addr.Zip = m[2]
		segs = segs[:len(segs)-1]
	} else if m := cityStateZipRe.FindStringSubmatch(last); m != nil {
		addr.State = strings.ToUpper(m[2])
		addr.Zip = m[3]
		segs[len(segs)-1] = strings.TrimSpace(m[1])
		if segs[len(segs)-1] == "" {
			segs = segs[:len(segs)-1]
		}
	}

	switch {
	case addr.State == "" || len(segs) == 0:
		addr.Street = strings.Join(segs, ", ")
	case len(segs) == 1:
		// Street and city collapsed into one segment; the last word is the
		// best available guess for the city.
		words := strings.Fields(segs[0])
		if len(words) > 1 {
			addr.City = words[len(words)-1]
			addr.Street = strings.Join(words[:len(words)-1], " ")
		} else {
			addr.City = segs[0]
		}
	default:
		addr.City = segs[len(segs)-1]
		addr.Street = strings.Join(segs[:len(segs)-1], ", ")
	}

	return addr, addr.Complete()
}

// ParseVendorString decomposes the legacy combined vendor column
// ("Bennet Farms, Rt. 17 Evansville, IL 55446") into the trade name and the
// structured address. ok reports a complete decomposition; a missing name
// always makes ok false.
func ParseVendorString(s string) (name string, addr Address, ok bool) {
	segs := splitSegments(s)
	if len(segs) == 0 {
		return "", Address{}, false
	}
	name = segs[0]
	addr, ok = ParseAddress(strings.Join(segs[1:], ", "))
	return name, addr, ok && name != ""
}

// splitSegments splits on commas, trims each segment and drops empties
func splitSegments(s string) []string {
	var segs []string
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
