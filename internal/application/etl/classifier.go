package etl

import (
	"github.com/greenspot/etl/internal/infrastructure/ingest"
)

// RowKind is the resolved meaning of one source row
type RowKind string

const (
	// KindPurchase is a restocking event: cost, purchase date and vendor present
	KindPurchase RowKind = "purchase"
	// KindSale is a sale event: price and date sold present
	KindSale RowKind = "sale"
	// KindCatalog is a pure item/stock row with no transactional fields
	KindCatalog RowKind = "catalog"
	// KindMalformed is a row matching neither pattern cleanly, or both at once
	KindMalformed RowKind = "malformed"
)

// ClassifiedRow pairs a source row with its resolved kind
type ClassifiedRow struct {
	Raw  ingest.RawRow
	Kind RowKind
}

// Classifier decides what each denormalized row means. The legacy export
// mixes purchases, sales and catalog rows in one table and the only signal
// is which columns are populated.
type Classifier struct{}

// NewClassifier creates a Classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify resolves the kind of a single row.
//
// A row showing purchase-side columns (cost, purchase date, vendor) together
// with sale-side columns (price, date sold, cust) is contradictory and is
// classified malformed rather than guessed at. A partial pattern on either
// side is likewise malformed.
func (c *Classifier) Classify(row ingest.RawRow) ClassifiedRow {
	purchaseSignal := row.Has(ingest.ColCost) || row.Has(ingest.ColPurchaseDate) || row.Has(ingest.ColVendor)
	saleSignal := row.Has(ingest.ColPrice) || row.Has(ingest.ColDateSold) || row.Has(ingest.ColCustomer)

	switch {
	case purchaseSignal && saleSignal:
		return ClassifiedRow{Raw: row, Kind: KindMalformed}
	case purchaseSignal:
		if row.Has(ingest.ColCost) && row.Has(ingest.ColPurchaseDate) && row.Has(ingest.ColVendor) {
			return ClassifiedRow{Raw: row, Kind: KindPurchase}
		}
		return ClassifiedRow{Raw: row, Kind: KindMalformed}
	case saleSignal:
		if row.Has(ingest.ColPrice) && row.Has(ingest.ColDateSold) {
			return ClassifiedRow{Raw: row, Kind: KindSale}
		}
		return ClassifiedRow{Raw: row, Kind: KindMalformed}
	}

	if row.Has(ingest.ColItemNum) && c.hasCatalogData(row) {
		return ClassifiedRow{Raw: row, Kind: KindCatalog}
	}
	return ClassifiedRow{Raw: row, Kind: KindMalformed}
}

// ClassifyAll resolves every row of a dataset, preserving input order
func (c *Classifier) ClassifyAll(rows []ingest.RawRow) []ClassifiedRow {
	out := make([]ClassifiedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, c.Classify(row))
	}
	return out
}

func (c *Classifier) hasCatalogData(row ingest.RawRow) bool {
	return row.Has(ingest.ColDescription) ||
		row.Has(ingest.ColItemType) ||
		row.Has(ingest.ColLocation) ||
		row.Has(ingest.ColUnit) ||
		row.Has(ingest.ColQuantityOnHand)
}
