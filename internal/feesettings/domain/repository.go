package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotProvisioned = errors.New("fee_settings_not_provisioned")

type Repository interface {
	// Get returns the singleton fee configuration row.
	Get(ctx context.Context, db *gorm.DB) (*FeeSettings, error)
	// UpdateFees overwrites the fee fields on the singleton row.
	UpdateFees(ctx context.Context, db *gorm.DB, settings *FeeSettings) error
	// UpdateAdditionalCosts replaces the additional cost list.
	UpdateAdditionalCosts(ctx context.Context, db *gorm.DB, id int64, costs []AdditionalCost) error
	// Ensure inserts a default row when none exists yet.
	Ensure(ctx context.Context, db *gorm.DB, id int64) error
}
