package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/revendahq/revenda/internal/catalog/domain"
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
	require.NoError(t, db.AutoMigrate(&domain.Product{}, &domain.Variant{}))
	return db
}

func ptr(v float64) *float64 { return &v }

func TestFindPricedProductsFilters(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateProduct(ctx, db, &domain.Product{
		ID: 1, OrgID: 1, Name: "priced", CostPrice: ptr(10), Price: 15, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.CreateProduct(ctx, db, &domain.Product{
		ID: 2, OrgID: 1, Name: "manual", CostPrice: nil, Price: 99, Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.CreateProduct(ctx, db, &domain.Product{
		ID: 3, OrgID: 1, Name: "inactive", CostPrice: ptr(10), Price: 15, Active: false, CreatedAt: now, UpdatedAt: now,
	}))

	priced, err := repo.FindPricedProducts(ctx, db)
	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, int64(1), priced[0].ID)
}

func TestUpdateProductPrice(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateProduct(ctx, db, &domain.Product{
		ID: 1, OrgID: 1, Name: "priced", CostPrice: ptr(10), Price: 15, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	stamp := now.Add(time.Hour)
	require.NoError(t, repo.UpdateProductPrice(ctx, db, 1, 18.75, stamp))

	p, err := repo.FindProductByID(ctx, db, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 18.75, p.Price)
	assert.WithinDuration(t, stamp, p.UpdatedAt, time.Second)
}

func TestUpdateVariantModifier(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateVariant(ctx, db, &domain.Variant{
		ID: 5, OrgID: 1, ProductID: 1, Name: "xl", CostPrice: ptr(20), PriceModifier: 1, Active: true, CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, repo.UpdateVariantModifier(ctx, db, 5, 25.50, now))

	v, err := repo.FindVariantByID(ctx, db, 5)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 25.50, v.PriceModifier)
}
