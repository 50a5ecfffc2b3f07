package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("unpadded us date", func(t *testing.T) {
		d, err := ParseDate("2/10/2022")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2022, 2, 10, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("padded us date", func(t *testing.T) {
		d, err := ParseDate("02/10/2022")
		require.NoError(t, err)
		assert.Equal(t, 2022, d.Year())
	})

	t.Run("iso date", func(t *testing.T) {
		d, err := ParseDate("2022-02-10")
		require.NoError(t, err)
		assert.Equal(t, time.February, d.Month())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("Feb tenth")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("$1,234.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.50")))

	d, err = ParseMoney("2.35")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("2.35")))

	_, err = ParseMoney("two dollars")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	n, err := ParseInt(" 25 ")
	require.NoError(t, err)
	assert.Equal(t, int64(25), n)

	n, err = ParseInt("25.0")
	require.NoError(t, err)
	assert.Equal(t, int64(25), n)

	n, err = ParseInt("-3")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), n)

	_, err = ParseInt("25.5")
	assert.Error(t, err)

	_, err = ParseInt("")
	assert.Error(t, err)
}
