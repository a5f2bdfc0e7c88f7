package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FeeTypePercentage = "percentage"
	FeeTypeFixed      = "fixed"
)

// AdditionalCost is one extra cost rule stacked onto every recomputed price.
// Percentage costs are computed against the item's original cost basis.
type AdditionalCost struct {
	Active bool    `json:"active"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
}

// FeeSettings is the process-wide fee configuration. A single row exists;
// the pricing engine snapshots it once per recalculation run.
type FeeSettings struct {
	ID                   int64                               `json:"id" gorm:"primaryKey"`
	PlatformFeeValue     float64                             `json:"platform_fee_value" gorm:"type:numeric;not null;default:0"`
	PlatformFeeType      string                              `json:"platform_fee_type" gorm:"type:text;not null;default:'percentage'"`
	GatewayFeePercentage float64                             `json:"gateway_fee_percentage" gorm:"type:numeric;not null;default:0"`
	AdditionalCosts      datatypes.JSONSlice[AdditionalCost] `json:"additional_costs"`
	CreatedAt            time.Time                           `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time                           `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (FeeSettings) TableName() string { return "fee_settings" }

func ValidFeeType(t string) bool {
	return t == FeeTypePercentage || t == FeeTypeFixed
}
