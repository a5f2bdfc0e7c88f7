package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByEventType(ctx context.Context, db *gorm.DB, eventType string) (*Subscription, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Subscription, error)
	UpdateConfig(ctx context.Context, db *gorm.DB, eventType string, url *string, active bool, updatedAt time.Time) error
	UpdateSecret(ctx context.Context, db *gorm.DB, eventType string, secret string, updatedAt time.Time) error
	// RecordDelivery overwrites the subscription's last-delivery fields.
	RecordDelivery(ctx context.Context, db *gorm.DB, eventType string, at time.Time, statusCode *int, errMessage *string) error
	// Ensure inserts a subscription row for the event type when missing.
	Ensure(ctx context.Context, db *gorm.DB, sub *Subscription) error

	HasDispatchRecord(ctx context.Context, db *gorm.DB, userID int64, eventType string) (bool, error)
	// CreateDispatchRecord inserts the dedup marker, ignoring a concurrent
	// insert of the same (user_id, event_type) pair.
	CreateDispatchRecord(ctx context.Context, db *gorm.DB, record *DispatchRecord) error
}
