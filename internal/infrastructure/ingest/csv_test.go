package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Item num,description,quantity on-hand,cost,purchase date,vendor,price,date sold,cust,Quantity,item type,Location,Unit"

func TestCSVReader_Read(t *testing.T) {
	t.Run("reads header and rows", func(t *testing.T) {
		input := testHeader + "\n" +
			`1000,Bennet Farm free-range eggs,29,2.35,2/1/2022,"Bennet Farms, Rt. 17 Evansville, IL 55446",,,,25,dairy,D12,dozen` + "\n"

		ds, err := NewCSVReader().Read("greenspot.csv", strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, "greenspot.csv", ds.Source)
		assert.Len(t, ds.Columns, 13)
		require.Len(t, ds.Rows, 1)
		row := ds.Rows[0]
		assert.Equal(t, 2, row.Line)
		assert.Equal(t, "1000", row.Get(ColItemNum))
		assert.Equal(t, "Bennet Farms, Rt. 17 Evansville, IL 55446", row.Get(ColVendor))
		assert.False(t, row.Has(ColPrice))
	})

	t.Run("strips utf8 bom", func(t *testing.T) {
		input := "\xEF\xBB\xBF" + testHeader + "\n"

		ds, err := NewCSVReader().Read("bom.csv", strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, ColItemNum, ds.Columns[0])
	})

	t.Run("pads short rows", func(t *testing.T) {
		input := testHeader + "\n1000,eggs\n"

		ds, err := NewCSVReader().Read("short.csv", strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, "", ds.Rows[0].Get(ColUnit))
	})

	t.Run("skips fully empty rows but keeps line numbers", func(t *testing.T) {
		input := testHeader + "\n,,,,,,,,,,,,\n1000,eggs,,,,,,,,,,,\n"

		ds, err := NewCSVReader().Read("gaps.csv", strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, 3, ds.Rows[0].Line)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewCSVReader().Read("empty.csv", strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects invalid utf8", func(t *testing.T) {
		_, err := NewCSVReader().Read("latin1.csv", strings.NewReader("Item num,descripci\xf3n\n"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		input := strings.ReplaceAll(testHeader, ",", ";") + "\n"
		// vendor field contains commas, so semicolons need no quoting
		input += "1000;eggs;29;2.35;2/1/2022;Bennet Farms, Rt. 17 Evansville, IL 55446;;;;25;dairy;D12;dozen\n"

		ds, err := NewCSVReader(WithDelimiter(';')).Read("semi.csv", strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, "Bennet Farms, Rt. 17 Evansville, IL 55446", ds.Rows[0].Get(ColVendor))
	})
}

func TestDataset_MissingColumns(t *testing.T) {
	ds := &Dataset{Columns: []string{ColItemNum, ColDescription}}

	missing := ds.MissingColumns(RequiredColumns())

	assert.Contains(t, missing, ColCost)
	assert.NotContains(t, missing, ColItemNum)
}
