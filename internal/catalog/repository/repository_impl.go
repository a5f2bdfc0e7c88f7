package repository

import (
	"context"
	"time"

	"github.com/revendahq/revenda/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateProduct(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, org_id, name, cost_price, price, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.OrgID,
		product.Name,
		product.CostPrice,
		product.Price,
		product.Active,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) CreateVariant(ctx context.Context, db *gorm.DB, variant *domain.Variant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO product_variants (id, org_id, product_id, name, cost_price, price_modifier, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		variant.ID,
		variant.OrgID,
		variant.ProductID,
		variant.Name,
		variant.CostPrice,
		variant.PriceModifier,
		variant.Active,
		variant.CreatedAt,
		variant.UpdatedAt,
	).Error
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, cost_price, price, active, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindVariantByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Variant, error) {
	var v domain.Variant
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, product_id, name, cost_price, price_modifier, active, created_at, updated_at
		 FROM product_variants WHERE id = ?`,
		id,
	).Scan(&v).Error
	if err != nil {
		return nil, err
	}
	if v.ID == 0 {
		return nil, nil
	}
	return &v, nil
}

func (r *repo) FindPricedProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, cost_price, price, active, created_at, updated_at
		 FROM products WHERE active = ? AND cost_price IS NOT NULL ORDER BY id ASC`,
		true,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPricedVariants(ctx context.Context, db *gorm.DB) ([]domain.Variant, error) {
	var items []domain.Variant
	err := db.WithContext(ctx).Raw(
		`SELECT id, org_id, product_id, name, cost_price, price_modifier, active, created_at, updated_at
		 FROM product_variants WHERE active = ? AND cost_price IS NOT NULL ORDER BY id ASC`,
		true,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateProductPrice(ctx context.Context, db *gorm.DB, id int64, price float64, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET price = ?, updated_at = ? WHERE id = ?`,
		price,
		updatedAt,
		id,
	).Error
}

func (r *repo) UpdateVariantModifier(ctx context.Context, db *gorm.DB, id int64, modifier float64, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE product_variants SET price_modifier = ?, updated_at = ? WHERE id = ?`,
		modifier,
		updatedAt,
		id,
	).Error
}
