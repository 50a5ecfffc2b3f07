package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVendorString(t *testing.T) {
	t.Run("street and city collapsed into one segment", func(t *testing.T) {
		name, addr, ok := ParseVendorString("Bennet Farms, Rt. 17 Evansville, IL 55446")

		assert.True(t, ok)
		assert.Equal(t, "Bennet Farms", name)
		assert.Equal(t, "Rt. 17", addr.Street)
		assert.Equal(t, "Evansville", addr.City)
		assert.Equal(t, "IL", addr.State)
		assert.Equal(t, "55446", addr.Zip)
	})

	t.Run("four comma segments", func(t *testing.T) {
		name, addr, ok := ParseVendorString("Freshness Inc, 202 E. Maple St., St. Joseph, MO 45678")

		assert.True(t, ok)
		assert.Equal(t, "Freshness Inc", name)
		assert.Equal(t, "202 E. Maple St.", addr.Street)
		assert.Equal(t, "St. Joseph", addr.City)
		assert.Equal(t, "MO", addr.State)
		assert.Equal(t, "45678", addr.Zip)
	})

	t.Run("llc suffix stays in the name", func(t *testing.T) {
		name, addr, ok := ParseVendorString("Ruby Redd Produce LLC, 1212 Milam St., Kenosha, AL 34567")

		assert.True(t, ok)
		assert.Equal(t, "Ruby Redd Produce LLC", name)
		assert.Equal(t, "1212 Milam St.", addr.Street)
		assert.Equal(t, "Kenosha", addr.City)
		assert.Equal(t, "AL", addr.State)
		assert.Equal(t, "34567", addr.Zip)
	})

	t.Run("name only is incomplete", func(t *testing.T) {
		name, addr, ok := ParseVendorString("Bennet Farms")

		assert.False(t, ok)
		assert.Equal(t, "Bennet Farms", name)
		assert.False(t, addr.Complete())
	})

	t.Run("empty input", func(t *testing.T) {
		name, _, ok := ParseVendorString("   ")

		assert.False(t, ok)
		assert.Empty(t, name)
	})
}

func TestParseAddress(t *testing.T) {
	t.Run("unrecognized tail stays in street", func(t *testing.T) {
		addr, ok := ParseAddress("somewhere on the north side")

		assert.False(t, ok)
		assert.Equal(t, "somewhere on the north side", addr.Street)
		assert.Empty(t, addr.City)
	})

	t.Run("zip plus four", func(t *testing.T) {
		addr, ok := ParseAddress("1 Main St., Springfield, IL 55446-1234")

		assert.True(t, ok)
		assert.Equal(t, "Springfield", addr.City)
		assert.Equal(t, "55446", addr.Zip)
	})

	t.Run("rendered form parses back identically", func(t *testing.T) {
		original := Address{Street: "Rt. 17", City: "Evansville", State: "IL", Zip: "55446"}

		parsed, ok := ParseAddress(original.String())

		assert.True(t, ok)
		assert.Equal(t, original, parsed)
	})
}
