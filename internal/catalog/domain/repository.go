package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateProduct(ctx context.Context, db *gorm.DB, product *Product) error
	CreateVariant(ctx context.Context, db *gorm.DB, variant *Variant) error
	FindProductByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindVariantByID(ctx context.Context, db *gorm.DB, id int64) (*Variant, error)

	// FindPricedProducts returns every active product with a non-null cost basis.
	FindPricedProducts(ctx context.Context, db *gorm.DB) ([]Product, error)
	// FindPricedVariants returns every active variant with a non-null cost basis.
	FindPricedVariants(ctx context.Context, db *gorm.DB) ([]Variant, error)

	UpdateProductPrice(ctx context.Context, db *gorm.DB, id int64, price float64, updatedAt time.Time) error
	UpdateVariantModifier(ctx context.Context, db *gorm.DB, id int64, modifier float64, updatedAt time.Time) error
}
