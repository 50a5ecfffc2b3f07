package etl

import (
	"testing"

	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"github.com/stretchr/testify/assert"
)

func rawRow(line int, fields map[string]string) ingest.RawRow {
	row := ingest.RawRow{Line: line, Fields: make(map[string]string)}
	for _, col := range ingest.RequiredColumns() {
		row.Fields[col] = ""
	}
	for k, v := range fields {
		row.Fields[k] = v
	}
	return row
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	t.Run("purchase row", func(t *testing.T) {
		row := rawRow(2, map[string]string{
			ingest.ColItemNum:      "1000",
			ingest.ColDescription:  "Bennet Farm free-range eggs",
			ingest.ColCost:         "2.35",
			ingest.ColPurchaseDate: "2/1/2022",
			ingest.ColVendor:       "Bennet Farms, Rt. 17 Evansville, IL 55446",
			ingest.ColQuantity:     "25",
		})

		assert.Equal(t, KindPurchase, c.Classify(row).Kind)
	})

	t.Run("sale row", func(t *testing.T) {
		row := rawRow(3, map[string]string{
			ingest.ColItemNum:  "1000",
			ingest.ColPrice:    "5.49",
			ingest.ColDateSold: "2/12/2022",
			ingest.ColCustomer: "198",
			ingest.ColQuantity: "2",
		})

		assert.Equal(t, KindSale, c.Classify(row).Kind)
	})

	t.Run("sale row without customer is still a sale", func(t *testing.T) {
		row := rawRow(4, map[string]string{
			ingest.ColItemNum:  "1000",
			ingest.ColPrice:    "5.49",
			ingest.ColDateSold: "2/12/2022",
			ingest.ColQuantity: "1",
		})

		assert.Equal(t, KindSale, c.Classify(row).Kind)
	})

	t.Run("catalog row", func(t *testing.T) {
		row := rawRow(5, map[string]string{
			ingest.ColItemNum:        "1000",
			ingest.ColDescription:    "Bennet Farm free-range eggs",
			ingest.ColQuantityOnHand: "29",
			ingest.ColItemType:       "dairy",
			ingest.ColLocation:       "D12",
			ingest.ColUnit:           "dozen",
		})

		assert.Equal(t, KindCatalog, c.Classify(row).Kind)
	})

	t.Run("both patterns at once is malformed", func(t *testing.T) {
		row := rawRow(6, map[string]string{
			ingest.ColItemNum:      "1000",
			ingest.ColCost:         "2.35",
			ingest.ColPurchaseDate: "2/1/2022",
			ingest.ColVendor:       "Bennet Farms, Rt. 17 Evansville, IL 55446",
			ingest.ColPrice:        "5.49",
			ingest.ColDateSold:     "2/12/2022",
		})

		assert.Equal(t, KindMalformed, c.Classify(row).Kind)
	})

	t.Run("partial purchase pattern is malformed", func(t *testing.T) {
		row := rawRow(7, map[string]string{
			ingest.ColItemNum: "1000",
			ingest.ColCost:    "2.35",
		})

		assert.Equal(t, KindMalformed, c.Classify(row).Kind)
	})

	t.Run("sale missing date sold is malformed", func(t *testing.T) {
		row := rawRow(8, map[string]string{
			ingest.ColItemNum: "1000",
			ingest.ColPrice:   "5.49",
		})

		assert.Equal(t, KindMalformed, c.Classify(row).Kind)
	})

	t.Run("item number alone is malformed", func(t *testing.T) {
		row := rawRow(9, map[string]string{
			ingest.ColItemNum: "1000",
		})

		assert.Equal(t, KindMalformed, c.Classify(row).Kind)
	})
}

func TestClassifier_ClassifyAll(t *testing.T) {
	c := NewClassifier()
	rows := []ingest.RawRow{
		rawRow(2, map[string]string{ingest.ColItemNum: "1000", ingest.ColDescription: "eggs"}),
		rawRow(3, map[string]string{}),
	}

	classified := c.ClassifyAll(rows)

	assert.Len(t, classified, 2)
	assert.Equal(t, KindCatalog, classified[0].Kind)
	assert.Equal(t, KindMalformed, classified[1].Kind)
	assert.Equal(t, 2, classified[0].Raw.Line)
}
