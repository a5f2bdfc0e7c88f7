package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/revendahq/revenda/internal/feesettings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A fresh pool connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.FeeSettings{}))
	return db
}

func TestGetWithoutRow(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()

	_, err := repo.Get(context.Background(), db)
	assert.ErrorIs(t, err, domain.ErrNotProvisioned)
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx, db, 1))
	require.NoError(t, repo.Ensure(ctx, db, 2))

	var count int64
	require.NoError(t, db.Model(&domain.FeeSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	settings, err := repo.Get(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), settings.ID)
	assert.Equal(t, domain.FeeTypePercentage, settings.PlatformFeeType)
}

func TestUpdateFeesAndAdditionalCosts(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx, db, 1))

	settings, err := repo.Get(ctx, db)
	require.NoError(t, err)

	settings.PlatformFeeValue = 7.5
	settings.PlatformFeeType = domain.FeeTypeFixed
	settings.GatewayFeePercentage = 4.99
	settings.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateFees(ctx, db, settings))

	require.NoError(t, repo.UpdateAdditionalCosts(ctx, db, settings.ID, []domain.AdditionalCost{
		{Active: true, Type: domain.FeeTypePercentage, Value: 2},
		{Active: false, Type: domain.FeeTypeFixed, Value: 1.5},
	}))

	reloaded, err := repo.Get(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 7.5, reloaded.PlatformFeeValue)
	assert.Equal(t, domain.FeeTypeFixed, reloaded.PlatformFeeType)
	assert.Equal(t, 4.99, reloaded.GatewayFeePercentage)
	require.Len(t, reloaded.AdditionalCosts, 2)
	assert.True(t, reloaded.AdditionalCosts[0].Active)
	assert.Equal(t, 2.0, reloaded.AdditionalCosts[0].Value)
}
