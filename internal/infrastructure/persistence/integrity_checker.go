package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// IntegrityIssue is a single post-load check failure: one row of one entity
// breaking one rule.
type IntegrityIssue struct {
	Entity string
	ID     string
	Rule   string
}

func (i IntegrityIssue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Entity, i.ID, i.Rule)
}

// GormIntegrityChecker runs the referential and business-rule checks against
// the loaded tables. Violations are reported, never silently repaired.
type GormIntegrityChecker struct {
	db *gorm.DB
}

// NewGormIntegrityChecker creates a new GormIntegrityChecker
func NewGormIntegrityChecker(db *gorm.DB) *GormIntegrityChecker {
	return &GormIntegrityChecker{db: db}
}

type issueQuery struct {
	entity string
	rule   string
	sql    string
}

// The FK queries back up the database constraints: on a store without
// enforced foreign keys they are the only referential check.
var integrityQueries = []issueQuery{
	{"product", "category must exist", `SELECT p.product_id AS id FROM products p
		WHERE p.category_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM product_categories c WHERE c.category_id = p.category_id)`},
	{"product", "primary vendor must exist", `SELECT p.product_id AS id FROM products p
		WHERE p.primary_vendor_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM vendors v WHERE v.vendor_id = p.primary_vendor_id)`},
	{"inventory", "product must exist", `SELECT i.product_id AS id FROM inventory i
		WHERE NOT EXISTS (SELECT 1 FROM products p WHERE p.product_id = i.product_id)`},
	{"inventory", "quantity on hand must be non-negative", `SELECT i.product_id AS id FROM inventory i
		WHERE i.quantity_on_hand < 0`},
	{"purchase_order", "product must exist", `SELECT po.purchase_id AS id FROM purchase_orders po
		WHERE NOT EXISTS (SELECT 1 FROM products p WHERE p.product_id = po.product_id)`},
	{"purchase_order", "vendor must exist", `SELECT po.purchase_id AS id FROM purchase_orders po
		WHERE NOT EXISTS (SELECT 1 FROM vendors v WHERE v.vendor_id = po.vendor_id)`},
	{"purchase_order", "quantity must be positive", `SELECT po.purchase_id AS id FROM purchase_orders po
		WHERE po.quantity <= 0`},
	{"purchase_order", "unit cost must be positive", `SELECT po.purchase_id AS id FROM purchase_orders po
		WHERE po.unit_cost <= 0`},
	{"purchase_order", "total cost must equal quantity times unit cost", `SELECT po.purchase_id AS id FROM purchase_orders po
		WHERE po.total_cost <> po.quantity * po.unit_cost`},
	{"sale_transaction", "product must exist", `SELECT s.transaction_id AS id FROM sales_transactions s
		WHERE NOT EXISTS (SELECT 1 FROM products p WHERE p.product_id = s.product_id)`},
	{"sale_transaction", "customer must exist", `SELECT s.transaction_id AS id FROM sales_transactions s
		WHERE s.customer_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM customers c WHERE c.customer_id = s.customer_id)`},
	{"sale_transaction", "quantity must be positive", `SELECT s.transaction_id AS id FROM sales_transactions s
		WHERE s.quantity <= 0`},
	{"sale_transaction", "unit price must be positive", `SELECT s.transaction_id AS id FROM sales_transactions s
		WHERE s.unit_price <= 0`},
	{"sale_transaction", "total amount must equal quantity times unit price", `SELECT s.transaction_id AS id FROM sales_transactions s
		WHERE s.total_amount <> s.quantity * s.unit_price`},
}

// CheckAll runs every integrity and business-rule query and returns the
// offending rows
func (c *GormIntegrityChecker) CheckAll(ctx context.Context) ([]IntegrityIssue, error) {
	var issues []IntegrityIssue
	for _, q := range integrityQueries {
		var ids []string
		if err := c.db.WithContext(ctx).Raw(q.sql).Scan(&ids).Error; err != nil {
			return nil, fmt.Errorf("integrity check %q on %s: %w", q.rule, q.entity, err)
		}
		for _, id := range ids {
			issues = append(issues, IntegrityIssue{Entity: q.entity, ID: id, Rule: q.rule})
		}
	}
	return issues, nil
}
