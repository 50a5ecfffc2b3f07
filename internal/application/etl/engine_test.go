package etl

import (
	"context"
	"testing"

	"github.com/greenspot/etl/internal/domain/catalog"
	"github.com/greenspot/etl/internal/domain/inventory"
	"github.com/greenspot/etl/internal/domain/partner"
	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/domain/trade"
	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"github.com/greenspot/etl/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestEngine(t *testing.T) (*Engine, *persistence.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&partner.Vendor{},
		&catalog.Product{},
		&partner.Customer{},
		&inventory.Record{},
		&run.LoadRun{},
		&trade.PurchaseOrder{},
		&trade.SaleTransaction{},
	))
	store := persistence.NewStore(db, 50)
	return NewEngine(store, zap.NewNop(), 100), store
}

func testDataset(rows ...ingest.RawRow) *ingest.Dataset {
	return &ingest.Dataset{
		Source:  "greenspot.csv",
		Columns: ingest.RequiredColumns(),
		Rows:    rows,
	}
}

func eggPurchaseRow(line int) ingest.RawRow {
	return rawRow(line, map[string]string{
		ingest.ColItemNum:        "1000",
		ingest.ColDescription:    "Bennet Farm free-range eggs",
		ingest.ColQuantityOnHand: "29",
		ingest.ColCost:           "2.35",
		ingest.ColPurchaseDate:   "2/1/2022",
		ingest.ColVendor:         "Bennet Farms, Rt. 17 Evansville, IL 55446",
		ingest.ColQuantity:       "25",
		ingest.ColItemType:       "dairy",
		ingest.ColLocation:       "D12",
		ingest.ColUnit:           "dozen",
	})
}

func eggSaleRow(line int) ingest.RawRow {
	return rawRow(line, map[string]string{
		ingest.ColItemNum:        "1000",
		ingest.ColDescription:    "Bennet Farm free-range eggs",
		ingest.ColQuantityOnHand: "27",
		ingest.ColPrice:          "5.49",
		ingest.ColDateSold:       "2/12/2022",
		ingest.ColCustomer:       "198",
		ingest.ColQuantity:       "2",
	})
}

func TestEngine_Run(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	report, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), eggSaleRow(3)))
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.Classified[KindPurchase])
	assert.Equal(t, 1, report.Classified[KindSale])

	for _, class := range run.Classes() {
		assert.Equal(t, int64(1), report.Tables[string(class)], "table %s", class)
	}

	// the vendor row carries the parsed address
	vendor, err := store.Vendors.FindByNaturalKey(ctx, "bennet farms", "evansville", "il")
	require.NoError(t, err)
	assert.Equal(t, "Rt. 17", vendor.Street)
	assert.Equal(t, "55446", vendor.Zip)

	// the product links to its category and primary vendor
	product, err := store.Products.FindByID(ctx, 1000)
	require.NoError(t, err)
	require.NotNil(t, product.CategoryID)
	require.NotNil(t, product.PrimaryVendorID)
	assert.Equal(t, vendor.ID, *product.PrimaryVendorID)
	assert.Equal(t, "dozen", product.UnitOfMeasure)

	// the later row's on-hand count wins
	record, err := store.Inventory.FindByProductID(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(27), record.QuantityOnHand)

	// the placeholder customer exists
	customer, err := store.Customers.FindByID(ctx, 198)
	require.NoError(t, err)
	assert.True(t, customer.IsPlaceholder())

	// the run record reached done
	loadRun, err := store.Runs.FindByID(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusDone, loadRun.Status)
	assert.Equal(t, 2, loadRun.TotalRows)
}

func TestEngine_Run_MissingColumnIsFatal(t *testing.T) {
	engine, _ := newTestEngine(t)

	ds := testDataset(eggPurchaseRow(2))
	cols := make([]string, 0, len(ds.Columns)-1)
	for _, c := range ds.Columns {
		if c != ingest.ColCost {
			cols = append(cols, c)
		}
	}
	ds.Columns = cols

	report, err := engine.Run(context.Background(), ds)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), ingest.ColCost)
}

func TestEngine_Run_TwiceDedupesMasterData(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), eggSaleRow(3)))
	require.NoError(t, err)
	second, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), eggSaleRow(3)))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)

	// master data upserts by natural key; transactional rows append per run
	for _, class := range []run.EntityClass{run.ClassCategories, run.ClassVendors, run.ClassProducts, run.ClassCustomers, run.ClassInventory} {
		assert.Equal(t, int64(1), second.Tables[string(class)], "table %s", class)
	}
	assert.Equal(t, int64(2), second.Tables[string(run.ClassPurchases)])
	assert.Equal(t, int64(2), second.Tables[string(run.ClassSales)])

	count, err := store.Purchases.CountByRun(ctx, second.RunID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEngine_Resume_SkipsLoadedTransactionalClasses(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), eggSaleRow(3)))
	require.NoError(t, err)

	resumed, err := engine.Resume(ctx, first.RunID, testDataset(eggPurchaseRow(2), eggSaleRow(3)))
	require.NoError(t, err)

	assert.Equal(t, first.RunID, resumed.RunID)
	assert.NotEmpty(t, resumed.Skipped[run.ClassPurchases])
	assert.NotEmpty(t, resumed.Skipped[run.ClassSales])
	assert.Equal(t, int64(1), resumed.Tables[string(run.ClassPurchases)])
	assert.Equal(t, int64(1), resumed.Tables[string(run.ClassSales)])
	assert.True(t, resumed.Passed)
}

func TestEngine_Run_ZeroQuantitySaleLoadsButFailsTheReport(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	sale := eggSaleRow(3)
	sale.Fields[ingest.ColQuantity] = "0"

	report, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), sale))
	require.NoError(t, err)

	// the row loads; the rule check flags it afterwards
	assert.Equal(t, int64(1), report.Tables[string(run.ClassSales)])
	assert.False(t, report.Passed)
	require.NotEmpty(t, report.Violations)
	found := false
	for _, v := range report.Violations {
		if v.Entity == "sale_transaction" && v.Rule == "quantity must be positive" {
			found = true
		}
	}
	assert.True(t, found, "expected a positive-quantity violation, got %v", report.Violations)

	// a clean load still completes the run
	loadRun, err := store.Runs.FindByID(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusDone, loadRun.Status)
}

func TestEngine_Run_SaleForUnknownProductIsFlagged(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	orphanSale := rawRow(3, map[string]string{
		ingest.ColItemNum:  "2000",
		ingest.ColPrice:    "3.99",
		ingest.ColDateSold: "2/12/2022",
		ingest.ColQuantity: "1",
	})

	report, err := engine.Run(ctx, testDataset(eggPurchaseRow(2), orphanSale))
	require.NoError(t, err)

	assert.False(t, report.Passed)
	found := false
	for _, v := range report.Violations {
		if v.Entity == "sale_transaction" && v.Rule == "product must exist" {
			found = true
		}
	}
	assert.True(t, found, "expected an unknown-product violation, got %v", report.Violations)

	// the sighting without a description was logged
	warned := false
	for _, w := range report.Warnings {
		if w.Code == ingest.CodeEmptyProductName {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestEngine_Run_MalformedRowsAreReportedNotFatal(t *testing.T) {
	engine, _ := newTestEngine(t)

	contradiction := rawRow(3, map[string]string{
		ingest.ColItemNum:      "1000",
		ingest.ColCost:         "2.35",
		ingest.ColPurchaseDate: "2/1/2022",
		ingest.ColVendor:       "Bennet Farms, Rt. 17 Evansville, IL 55446",
		ingest.ColPrice:        "5.49",
		ingest.ColDateSold:     "2/12/2022",
	})

	report, err := engine.Run(context.Background(), testDataset(eggPurchaseRow(2), contradiction))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Classified[KindMalformed])
	require.Len(t, report.FailedRows, 1)
	assert.Equal(t, ingest.CodeMalformedRow, report.FailedRows[0].Code)
	assert.True(t, report.Passed)
}
