package repository

import (
	"context"
	"time"

	"github.com/revendahq/revenda/internal/feesettings/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.FeeSettings, error) {
	var settings domain.FeeSettings
	err := db.WithContext(ctx).
		Model(&domain.FeeSettings{}).
		Order("id ASC").
		Limit(1).
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	if settings.ID == 0 {
		return nil, domain.ErrNotProvisioned
	}
	return &settings, nil
}

func (r *repo) UpdateFees(ctx context.Context, db *gorm.DB, settings *domain.FeeSettings) error {
	return db.WithContext(ctx).Exec(
		`UPDATE fee_settings
		 SET platform_fee_value = ?, platform_fee_type = ?, gateway_fee_percentage = ?, updated_at = ?
		 WHERE id = ?`,
		settings.PlatformFeeValue,
		settings.PlatformFeeType,
		settings.GatewayFeePercentage,
		settings.UpdatedAt,
		settings.ID,
	).Error
}

func (r *repo) UpdateAdditionalCosts(ctx context.Context, db *gorm.DB, id int64, costs []domain.AdditionalCost) error {
	return db.WithContext(ctx).
		Model(&domain.FeeSettings{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"additional_costs": datatypes.NewJSONSlice(costs),
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *repo) Ensure(ctx context.Context, db *gorm.DB, id int64) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.FeeSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	return db.WithContext(ctx).Create(&domain.FeeSettings{
		ID:              id,
		PlatformFeeType: domain.FeeTypePercentage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}).Error
}
