package domain

import "time"

// Product is a catalog item owned by a reseller storefront. Price is the
// sellable price; CostPrice is the basis the pricing engine recomputes from.
// A nil CostPrice marks the price as manual and exempt from recomputation.
type Product struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	OrgID     int64     `json:"organization_id" gorm:"column:org_id;not null;index"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CostPrice *float64  `json:"cost_price,omitempty" gorm:"type:numeric"`
	Price     float64   `json:"price" gorm:"type:numeric;not null;default:0"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// Variant is a product variation. PriceModifier plays the role of Price.
type Variant struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	OrgID         int64     `json:"organization_id" gorm:"column:org_id;not null;index"`
	ProductID     int64     `json:"product_id" gorm:"not null;index"`
	Name          string    `json:"name" gorm:"type:text;not null"`
	CostPrice     *float64  `json:"cost_price,omitempty" gorm:"type:numeric"`
	PriceModifier float64   `json:"price_modifier" gorm:"type:numeric;not null;default:0"`
	Active        bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Variant) TableName() string { return "product_variants" }
