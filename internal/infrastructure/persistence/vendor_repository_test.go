package persistence

import (
	"context"
	"testing"

	"github.com/greenspot/etl/internal/domain/partner"
	"github.com/greenspot/etl/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupVendorTestDB creates an in-memory SQLite database for testing
func setupVendorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&partner.Vendor{}))
	return db
}

func TestGormVendorRepository_FindByNaturalKey(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	vendor, err := partner.NewVendor("Bennet Farms", "Rt. 17", "Evansville", "IL", "55446")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vendor))

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		found, err := repo.FindByNaturalKey(ctx, "  BENNET farms ", "EVANSVILLE", "il")
		require.NoError(t, err)
		assert.Equal(t, vendor.ID, found.ID)
		assert.Equal(t, "Rt. 17", found.Street)
	})

	t.Run("different city is a different vendor", func(t *testing.T) {
		_, err := repo.FindByNaturalKey(ctx, "Bennet Farms", "Springfield", "IL")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormVendorRepository_SaveIsUpsert(t *testing.T) {
	db := setupVendorTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	vendor, err := partner.NewVendor("Freshness Inc", "202 E. Maple St.", "St. Joseph", "MO", "45678")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vendor))

	vendor.MergeContact("555-0100", "orders@freshness.example")
	require.NoError(t, repo.Save(ctx, vendor))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", found.Phone)
}
