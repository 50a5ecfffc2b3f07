package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/domain/shared"
	"github.com/greenspot/etl/internal/domain/trade"
	"github.com/greenspot/etl/internal/infrastructure/persistence"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// classDependencies names which classes each class references. A failed class
// takes its dependents down with it; unrelated classes still load.
var classDependencies = map[run.EntityClass][]run.EntityClass{
	run.ClassCategories: nil,
	run.ClassVendors:    nil,
	run.ClassProducts:   {run.ClassCategories, run.ClassVendors},
	run.ClassCustomers:  nil,
	run.ClassInventory:  {run.ClassProducts},
	run.ClassPurchases:  {run.ClassProducts, run.ClassVendors},
	run.ClassSales:      {run.ClassProducts, run.ClassCustomers},
}

// ClassResult is the outcome of loading one entity class
type ClassResult struct {
	Class      run.EntityClass
	Loaded     int
	Skipped    bool
	SkipReason string
	Err        error
}

// Failed reports whether the class itself failed or was skipped because a
// class it depends on failed. Classes skipped by the retry guard already hold
// their rows and do not count as failed.
func (c *ClassResult) Failed() bool {
	return c.Err != nil || (c.Skipped && c.SkipReason != skipAlreadyLoaded)
}

const skipAlreadyLoaded = "rows for this run already present"

// LoadResult is the outcome of the whole loading phase
type LoadResult struct {
	Results map[run.EntityClass]*ClassResult
}

// Loaded returns the total number of rows written across classes
func (l *LoadResult) Loaded() int {
	total := 0
	for _, r := range l.Results {
		total += r.Loaded
	}
	return total
}

// FailedClasses returns the classes that failed or were skipped on a failure,
// in load order.
func (l *LoadResult) FailedClasses() []run.EntityClass {
	var failed []run.EntityClass
	for _, class := range run.Classes() {
		if r := l.Results[class]; r != nil && r.Failed() {
			failed = append(failed, class)
		}
	}
	return failed
}

// Loader writes the staging model to the store. Each entity class loads in
// its own transaction, in dependency order; surrogate ids minted during
// staging are replaced by the store's ids when a natural key already exists,
// and the staged pointers carry the adopted ids into the transactional rows.
type Loader struct {
	store  *persistence.Store
	logger *zap.Logger
}

// NewLoader creates a Loader
func NewLoader(store *persistence.Store, logger *zap.Logger) *Loader {
	return &Loader{store: store, logger: logger}
}

// Load writes every entity class of the staging model
func (l *Loader) Load(ctx context.Context, staging *Staging, loadRun *run.LoadRun) (*LoadResult, error) {
	result := &LoadResult{Results: make(map[run.EntityClass]*ClassResult)}

	for _, class := range run.Classes() {
		cr := &ClassResult{Class: class}
		result.Results[class] = cr

		if dep := l.failedDependency(result, class); dep != "" {
			cr.Skipped = true
			cr.SkipReason = fmt.Sprintf("depends on failed class %s", dep)
			l.logger.Warn("skipping entity class", zap.String("class", string(class)), zap.String("reason", cr.SkipReason))
			continue
		}

		if err := loadRun.AdvanceClass(class); err != nil {
			return nil, err
		}

		if err := l.loadClass(ctx, staging, loadRun, cr); err != nil {
			cr.Err = classifyDBError(class, err)
			l.logger.Error("entity class failed", zap.String("class", string(class)), zap.Error(cr.Err))
			continue
		}
		l.logger.Info("entity class loaded",
			zap.String("class", string(class)),
			zap.Int("rows", cr.Loaded),
			zap.Bool("skipped", cr.Skipped),
		)
	}

	return result, nil
}

func (l *Loader) failedDependency(result *LoadResult, class run.EntityClass) run.EntityClass {
	for _, dep := range classDependencies[class] {
		if r := result.Results[dep]; r != nil && r.Failed() {
			return dep
		}
	}
	return ""
}

func (l *Loader) loadClass(ctx context.Context, staging *Staging, loadRun *run.LoadRun, cr *ClassResult) error {
	return l.store.Transaction(ctx, func(tx *persistence.Store) error {
		switch cr.Class {
		case run.ClassCategories:
			return l.loadCategories(ctx, tx, staging, cr)
		case run.ClassVendors:
			return l.loadVendors(ctx, tx, staging, cr)
		case run.ClassProducts:
			return l.loadProducts(ctx, tx, staging, cr)
		case run.ClassCustomers:
			return l.loadCustomers(ctx, tx, staging, cr)
		case run.ClassInventory:
			return l.loadInventory(ctx, tx, staging, cr)
		case run.ClassPurchases:
			return l.loadPurchases(ctx, tx, staging, loadRun, cr)
		case run.ClassSales:
			return l.loadSales(ctx, tx, staging, loadRun, cr)
		}
		return fmt.Errorf("unknown entity class %s", cr.Class)
	})
}

// loadCategories upserts categories by natural key. When the store already
// holds the name, the staged entity adopts the stored surrogate id so every
// staged reference to it resolves to the existing row.
func (l *Loader) loadCategories(ctx context.Context, tx *persistence.Store, staging *Staging, cr *ClassResult) error {
	for _, category := range staging.Categories {
		existing, err := tx.Categories.FindByName(ctx, category.Name)
		switch {
		case err == nil:
			category.ID = existing.ID
			category.CreatedAt = existing.CreatedAt
			if category.Description == "" {
				category.Description = existing.Description
			}
		case errors.Is(err, shared.ErrNotFound):
			// first sighting, keep the staged id
		default:
			return err
		}
		if err := tx.Categories.Save(ctx, category); err != nil {
			return err
		}
		cr.Loaded++
	}
	return nil
}

func (l *Loader) loadVendors(ctx context.Context, tx *persistence.Store, staging *Staging, cr *ClassResult) error {
	for _, vendor := range staging.Vendors {
		existing, err := tx.Vendors.FindByNaturalKey(ctx, vendor.Name, vendor.City, vendor.State)
		switch {
		case err == nil:
			vendor.ID = existing.ID
			vendor.CreatedAt = existing.CreatedAt
			if vendor.Street == "" {
				vendor.Street = existing.Street
			}
			if vendor.Zip == "" {
				vendor.Zip = existing.Zip
			}
			if vendor.Phone == "" {
				vendor.Phone = existing.Phone
			}
			if vendor.Email == "" {
				vendor.Email = existing.Email
			}
		case errors.Is(err, shared.ErrNotFound):
		default:
			return err
		}
		if err := tx.Vendors.Save(ctx, vendor); err != nil {
			return err
		}
		cr.Loaded++
	}
	return nil
}

// loadProducts runs after categories and vendors, so the staged links hold
// their final surrogate ids by the time they are copied onto the product.
func (l *Loader) loadProducts(ctx context.Context, tx *persistence.Store, staging *Staging, cr *ClassResult) error {
	for _, sp := range staging.Products {
		product := sp.Product
		if sp.Category != nil {
			product.SetCategory(&sp.Category.ID)
		}
		if sp.PrimaryVendor != nil {
			product.SetPrimaryVendor(&sp.PrimaryVendor.ID)
		}

		existing, err := tx.Products.FindByID(ctx, product.ID)
		switch {
		case err == nil:
			product.CreatedAt = existing.CreatedAt
			if product.CategoryID == nil {
				product.CategoryID = existing.CategoryID
			}
			if product.PrimaryVendorID == nil {
				product.PrimaryVendorID = existing.PrimaryVendorID
			}
		case errors.Is(err, shared.ErrNotFound):
		default:
			return err
		}
		if err := tx.Products.Save(ctx, product); err != nil {
			return err
		}
		cr.Loaded++
	}
	return nil
}

// loadCustomers never overwrites an existing customer: the staged entity is
// only a placeholder and must not clobber real contact data.
func (l *Loader) loadCustomers(ctx context.Context, tx *persistence.Store, staging *Staging, cr *ClassResult) error {
	for _, customer := range staging.Customers {
		_, err := tx.Customers.FindByID(ctx, customer.ID)
		switch {
		case err == nil:
			continue
		case errors.Is(err, shared.ErrNotFound):
		default:
			return err
		}
		if err := tx.Customers.Save(ctx, customer); err != nil {
			return err
		}
		cr.Loaded++
	}
	return nil
}

func (l *Loader) loadInventory(ctx context.Context, tx *persistence.Store, staging *Staging, cr *ClassResult) error {
	for productID, record := range staging.Inventory {
		existing, err := tx.Inventory.FindByProductID(ctx, productID)
		switch {
		case err == nil:
			// Reorder and max levels are operator-maintained; only the
			// observed quantity moves.
			existing.SetQuantity(record.QuantityOnHand)
			record = existing
		case errors.Is(err, shared.ErrNotFound):
		default:
			return err
		}
		if err := tx.Inventory.Save(ctx, record); err != nil {
			return err
		}
		cr.Loaded++
	}
	return nil
}

// loadPurchases is append-only, guarded by the run id: if this run already
// wrote purchase rows, a retry skips the class instead of duplicating them.
func (l *Loader) loadPurchases(ctx context.Context, tx *persistence.Store, staging *Staging, loadRun *run.LoadRun, cr *ClassResult) error {
	count, err := tx.Purchases.CountByRun(ctx, loadRun.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		cr.Skipped = true
		cr.SkipReason = skipAlreadyLoaded
		return nil
	}

	orders := make([]*trade.PurchaseOrder, 0, len(staging.Purchases))
	for _, sp := range staging.Purchases {
		order, oerr := trade.NewPurchaseOrder(sp.ProductID, sp.Vendor.ID, sp.Quantity, sp.UnitCost, sp.Date, loadRun.ID)
		if oerr != nil {
			return oerr
		}
		orders = append(orders, order)
	}
	if err := tx.Purchases.InsertBatch(ctx, orders); err != nil {
		return err
	}
	cr.Loaded = len(orders)
	return nil
}

func (l *Loader) loadSales(ctx context.Context, tx *persistence.Store, staging *Staging, loadRun *run.LoadRun, cr *ClassResult) error {
	count, err := tx.Sales.CountByRun(ctx, loadRun.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		cr.Skipped = true
		cr.SkipReason = skipAlreadyLoaded
		return nil
	}

	sales := make([]*trade.SaleTransaction, 0, len(staging.Sales))
	for _, ss := range staging.Sales {
		sale, serr := trade.NewSaleTransaction(ss.ProductID, ss.CustomerID, ss.Quantity, ss.UnitPrice, ss.Date, loadRun.ID)
		if serr != nil {
			return serr
		}
		sales = append(sales, sale)
	}
	if err := tx.Sales.InsertBatch(ctx, sales); err != nil {
		return err
	}
	cr.Loaded = len(sales)
	return nil
}

// classifyDBError attaches the postgres error class so the report can say
// whether a failure was referential, a key collision, or something else.
func classifyDBError(class run.EntityClass, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return fmt.Errorf("loading %s: foreign key violation (%s): %w", class, pqErr.Constraint, err)
		case "23505":
			return fmt.Errorf("loading %s: duplicate key (%s): %w", class, pqErr.Constraint, err)
		}
	}
	return fmt.Errorf("loading %s: %w", class, err)
}
