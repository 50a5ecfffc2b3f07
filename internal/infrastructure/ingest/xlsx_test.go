package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXReader_Read(t *testing.T) {
	header := make([]interface{}, 0, 13)
	for _, c := range strings.Split(testHeader, ",") {
		header = append(header, c)
	}

	t.Run("reads first sheet like csv", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			header,
			{"1000", "Bennet Farm free-range eggs", "29", "2.35", "2/1/2022", "Bennet Farms, Rt. 17 Evansville, IL 55446", "", "", "", "25", "dairy", "D12", "dozen"},
		})

		ds, err := NewXLSXReader().Read("greenspot.xlsx", buf)

		require.NoError(t, err)
		assert.Len(t, ds.Columns, 13)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, 2, ds.Rows[0].Line)
		assert.Equal(t, "1000", ds.Rows[0].Get(ColItemNum))
		assert.Equal(t, "dairy", ds.Rows[0].Get(ColItemType))
	})

	t.Run("pads short rows", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			header,
			{"1000", "eggs"},
		})

		ds, err := NewXLSXReader().Read("short.xlsx", buf)

		require.NoError(t, err)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, "", ds.Rows[0].Get(ColUnit))
	})

	t.Run("header only", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{header})

		ds, err := NewXLSXReader().Read("headeronly.xlsx", buf)

		require.NoError(t, err)
		assert.Empty(t, ds.Rows)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := NewXLSXReader().Read("bad.xlsx", strings.NewReader("plain text"))
		assert.Error(t, err)
	})
}
