package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseOrder(t *testing.T) {
	date := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
	vendorID := uuid.New()
	runID := uuid.New()

	t.Run("derives the total from quantity and unit cost", func(t *testing.T) {
		order, err := NewPurchaseOrder(1000, vendorID, 25, decimal.RequireFromString("2.35"), date, runID)

		require.NoError(t, err)
		assert.True(t, order.TotalCost.Equal(decimal.RequireFromString("58.75")))
		assert.Equal(t, PurchaseStatusReceived, order.Status)
		assert.Equal(t, runID, order.RunID)
	})

	t.Run("zero quantity is accepted, the rule check flags it later", func(t *testing.T) {
		order, err := NewPurchaseOrder(1000, vendorID, 0, decimal.RequireFromString("2.35"), date, runID)

		require.NoError(t, err)
		assert.True(t, order.TotalCost.IsZero())
	})

	t.Run("rejects structural problems", func(t *testing.T) {
		_, err := NewPurchaseOrder(0, vendorID, 1, decimal.NewFromInt(1), date, runID)
		assert.Error(t, err)

		_, err = NewPurchaseOrder(1000, uuid.Nil, 1, decimal.NewFromInt(1), date, runID)
		assert.Error(t, err)

		_, err = NewPurchaseOrder(1000, vendorID, 1, decimal.NewFromInt(1), time.Time{}, runID)
		assert.Error(t, err)
	})
}

func TestNewSaleTransaction(t *testing.T) {
	date := time.Date(2022, 2, 12, 0, 0, 0, 0, time.UTC)
	runID := uuid.New()

	t.Run("derives the total from quantity and unit price", func(t *testing.T) {
		customerID := int64(198)
		sale, err := NewSaleTransaction(1000, &customerID, 2, decimal.RequireFromString("5.49"), date, runID)

		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("10.98")))
		assert.False(t, sale.IsWalkIn())
	})

	t.Run("nil customer is a walk-in", func(t *testing.T) {
		sale, err := NewSaleTransaction(1000, nil, 1, decimal.RequireFromString("5.49"), date, runID)

		require.NoError(t, err)
		assert.True(t, sale.IsWalkIn())
	})

	t.Run("rejects a non-positive customer id", func(t *testing.T) {
		bad := int64(0)
		_, err := NewSaleTransaction(1000, &bad, 1, decimal.NewFromInt(1), date, runID)
		assert.Error(t, err)
	})
}
