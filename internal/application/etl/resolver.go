package etl

import (
	"fmt"

	"github.com/greenspot/etl/internal/domain/catalog"
	"github.com/greenspot/etl/internal/domain/inventory"
	"github.com/greenspot/etl/internal/domain/partner"
	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"go.uber.org/zap"
)

// Resolver turns classified rows into the deduplicated staging model. Rows
// are processed in input order and repeated sightings of the same entity are
// merged with the most recent row winning, so the output is deterministic for
// a given input file.
//
// Resolution failures drop a single row's contribution and are logged; they
// never abort the run.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve builds the staging model from classified rows
func (r *Resolver) Resolve(rows []ClassifiedRow, quality *ingest.QualityLog) *Staging {
	staging := NewStaging()

	for _, row := range rows {
		switch row.Kind {
		case KindCatalog:
			r.resolveCatalog(staging, row.Raw, quality)
		case KindPurchase:
			r.resolvePurchase(staging, row.Raw, quality)
		case KindSale:
			r.resolveSale(staging, row.Raw, quality)
		default:
			quality.FailRow(row.Raw.Line, "", ingest.CodeMalformedRow,
				"row matches neither the purchase, sale nor catalog pattern")
		}
	}

	r.logger.Info("resolution complete",
		zap.Int("rows", len(rows)),
		zap.Any("staged", staging.Counts()),
		zap.Int("findings", quality.Total()),
	)
	return staging
}

func (r *Resolver) resolveCatalog(staging *Staging, row ingest.RawRow, quality *ingest.QualityLog) {
	r.resolveProduct(staging, row, quality)
}

func (r *Resolver) resolvePurchase(staging *Staging, row ingest.RawRow, quality *ingest.QualityLog) {
	itemNum, ok := r.resolveProduct(staging, row, quality)
	if !ok {
		return
	}

	vendor := r.resolveVendor(staging, row, quality)
	if vendor == nil {
		return
	}

	// The first purchase row seen for a product names its primary vendor.
	if sp := staging.Products[itemNum]; sp != nil && sp.PrimaryVendor == nil {
		sp.PrimaryVendor = vendor
	}

	quantity, err := ingest.ParseInt(row.Get(ingest.ColQuantity))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColQuantity, ingest.CodeBadQuantity,
			fmt.Sprintf("purchase quantity: %v", err))
		return
	}
	unitCost, err := ingest.ParseMoney(row.Get(ingest.ColCost))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColCost, ingest.CodeBadAmount,
			fmt.Sprintf("purchase cost: %v", err))
		return
	}
	date, err := ingest.ParseDate(row.Get(ingest.ColPurchaseDate))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColPurchaseDate, ingest.CodeBadDate,
			fmt.Sprintf("purchase date: %v", err))
		return
	}

	staging.Purchases = append(staging.Purchases, &StagedPurchase{
		ProductID: itemNum,
		Vendor:    vendor,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Date:      date,
		Line:      row.Line,
	})
}

func (r *Resolver) resolveSale(staging *Staging, row ingest.RawRow, quality *ingest.QualityLog) {
	itemNum, ok := r.resolveProduct(staging, row, quality)
	if !ok {
		return
	}

	quantity, err := ingest.ParseInt(row.Get(ingest.ColQuantity))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColQuantity, ingest.CodeBadQuantity,
			fmt.Sprintf("sale quantity: %v", err))
		return
	}
	unitPrice, err := ingest.ParseMoney(row.Get(ingest.ColPrice))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColPrice, ingest.CodeBadAmount,
			fmt.Sprintf("sale price: %v", err))
		return
	}
	date, err := ingest.ParseDate(row.Get(ingest.ColDateSold))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColDateSold, ingest.CodeBadDate,
			fmt.Sprintf("sale date: %v", err))
		return
	}

	// A missing customer id is an anonymous walk-in sale, not an error. An
	// unparseable one is logged and the sale degrades to walk-in.
	var customerID *int64
	if row.Has(ingest.ColCustomer) {
		id, err := ingest.ParseInt(row.Get(ingest.ColCustomer))
		if err != nil || id <= 0 {
			quality.Warn(row.Line, ingest.ColCustomer, ingest.CodeBadCustomerID,
				fmt.Sprintf("customer id %q not usable, recording walk-in sale", row.Get(ingest.ColCustomer)))
		} else {
			customerID = &id
			if _, seen := staging.Customers[id]; !seen {
				customer, cerr := partner.NewPlaceholderCustomer(id)
				if cerr == nil {
					staging.Customers[id] = customer
				}
			}
		}
	}

	staging.Sales = append(staging.Sales, &StagedSale{
		ProductID:  itemNum,
		CustomerID: customerID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Date:       date,
		Line:       row.Line,
	})
}

// resolveProduct merges the row's catalog fields into the staged product and
// returns the item number. ok is false when the row cannot name a product at
// all, which invalidates any transactional contribution too.
func (r *Resolver) resolveProduct(staging *Staging, row ingest.RawRow, quality *ingest.QualityLog) (int64, bool) {
	itemNum, err := ingest.ParseInt(row.Get(ingest.ColItemNum))
	if err != nil || itemNum <= 0 {
		quality.FailRow(row.Line, ingest.ColItemNum, ingest.CodeBadItemNumber,
			fmt.Sprintf("item number %q not usable", row.Get(ingest.ColItemNum)))
		return 0, false
	}

	sp := staging.Products[itemNum]
	if sp == nil {
		name := row.Get(ingest.ColDescription)
		if name == "" {
			// The product can still be defined by a later row; the
			// transactional part of this one stays valid.
			quality.Warn(row.Line, ingest.ColDescription, ingest.CodeEmptyProductName,
				fmt.Sprintf("item %d sighted without a description", itemNum))
			r.resolveInventory(staging, itemNum, row, quality)
			return itemNum, true
		}
		product, perr := catalog.NewProduct(itemNum, name)
		if perr != nil {
			quality.FailRow(row.Line, ingest.ColItemNum, ingest.CodeBadItemNumber, perr.Error())
			return 0, false
		}
		unit, known := ingest.NormalizeUnit(row.Get(ingest.ColUnit))
		if !known {
			quality.Warn(row.Line, ingest.ColUnit, ingest.CodeUnknownUnit,
				fmt.Sprintf("unit %q has no canonical form", row.Get(ingest.ColUnit)))
		}
		product.SetCatalogFields(unit, ingest.NormalizeLocation(row.Get(ingest.ColLocation)))
		sp = &StagedProduct{Product: product, Line: row.Line}
		staging.Products[itemNum] = sp
	} else {
		sp.Product.Rename(row.Get(ingest.ColDescription))
		if row.Has(ingest.ColUnit) {
			unit, known := ingest.NormalizeUnit(row.Get(ingest.ColUnit))
			if !known {
				quality.Warn(row.Line, ingest.ColUnit, ingest.CodeUnknownUnit,
					fmt.Sprintf("unit %q has no canonical form", row.Get(ingest.ColUnit)))
			}
			sp.Product.SetCatalogFields(unit, sp.Product.LocationCode)
		}
		if row.Has(ingest.ColLocation) {
			sp.Product.SetCatalogFields(sp.Product.UnitOfMeasure, ingest.NormalizeLocation(row.Get(ingest.ColLocation)))
		}
	}

	if row.Has(ingest.ColItemType) {
		sp.Category = r.resolveCategory(staging, row.Get(ingest.ColItemType))
	}

	r.resolveInventory(staging, itemNum, row, quality)
	return itemNum, true
}

func (r *Resolver) resolveCategory(staging *Staging, itemType string) *catalog.Category {
	key := catalog.NormalizeCategoryName(itemType)
	if existing, ok := staging.Categories[key]; ok {
		return existing
	}
	category, err := catalog.NewCategory(itemType, "")
	if err != nil {
		return nil
	}
	staging.Categories[key] = category
	return category
}

func (r *Resolver) resolveInventory(staging *Staging, itemNum int64, row ingest.RawRow, quality *ingest.QualityLog) {
	if !row.Has(ingest.ColQuantityOnHand) {
		return
	}
	qty, err := ingest.ParseInt(row.Get(ingest.ColQuantityOnHand))
	if err != nil {
		quality.FailRow(row.Line, ingest.ColQuantityOnHand, ingest.CodeBadQuantity,
			fmt.Sprintf("quantity on-hand: %v", err))
		return
	}
	if record, ok := staging.Inventory[itemNum]; ok {
		record.SetQuantity(qty)
		return
	}
	record, rerr := inventory.NewRecord(itemNum, qty)
	if rerr != nil {
		quality.FailRow(row.Line, ingest.ColQuantityOnHand, ingest.CodeBadQuantity, rerr.Error())
		return
	}
	staging.Inventory[itemNum] = record
}

// resolveVendor parses the combined vendor column and dedups by natural key.
// A nil return means the row carried no usable vendor name.
func (r *Resolver) resolveVendor(staging *Staging, row ingest.RawRow, quality *ingest.QualityLog) *partner.Vendor {
	raw := row.Get(ingest.ColVendor)
	name, addr, complete := ingest.ParseVendorString(raw)
	if name == "" {
		quality.FailRow(row.Line, ingest.ColVendor, ingest.CodeEmptyVendorName,
			"purchase row carries no vendor name")
		return nil
	}
	if !complete {
		quality.Warn(row.Line, ingest.ColVendor, ingest.CodeAddressUnparsed,
			fmt.Sprintf("vendor address %q only partially decomposed", raw))
	}

	key := partner.VendorNaturalKey(name, addr.City, addr.State)
	if existing, ok := staging.Vendors[key]; ok {
		return existing
	}
	vendor, err := partner.NewVendor(name, addr.Street, addr.City, addr.State, addr.Zip)
	if err != nil {
		quality.FailRow(row.Line, ingest.ColVendor, ingest.CodeEmptyVendorName, err.Error())
		return nil
	}
	staging.Vendors[key] = vendor
	return vendor
}
