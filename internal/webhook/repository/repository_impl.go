package repository

import (
	"context"
	"time"

	"github.com/revendahq/revenda/internal/webhook/domain"
	"github.com/revendahq/revenda/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByEventType(ctx context.Context, conn *gorm.DB, eventType string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := conn.WithContext(ctx).Raw(
		`SELECT id, event_type, webhook_url, active, secret_token, last_triggered_at, last_status_code, last_error_message, created_at, updated_at
		 FROM webhook_subscriptions WHERE event_type = ?`,
		eventType,
	).Scan(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == 0 {
		return nil, nil
	}
	return &sub, nil
}

func (r *repo) FindAll(ctx context.Context, conn *gorm.DB) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := conn.WithContext(ctx).Raw(
		`SELECT id, event_type, webhook_url, active, secret_token, last_triggered_at, last_status_code, last_error_message, created_at, updated_at
		 FROM webhook_subscriptions ORDER BY event_type ASC`,
	).Scan(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repo) UpdateConfig(ctx context.Context, conn *gorm.DB, eventType string, url *string, active bool, updatedAt time.Time) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE webhook_subscriptions SET webhook_url = ?, active = ?, updated_at = ? WHERE event_type = ?`,
		url,
		active,
		updatedAt,
		eventType,
	).Error
}

func (r *repo) UpdateSecret(ctx context.Context, conn *gorm.DB, eventType string, secret string, updatedAt time.Time) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE webhook_subscriptions SET secret_token = ?, updated_at = ? WHERE event_type = ?`,
		secret,
		updatedAt,
		eventType,
	).Error
}

func (r *repo) RecordDelivery(ctx context.Context, conn *gorm.DB, eventType string, at time.Time, statusCode *int, errMessage *string) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE webhook_subscriptions
		 SET last_triggered_at = ?, last_status_code = ?, last_error_message = ?, updated_at = ?
		 WHERE event_type = ?`,
		at,
		statusCode,
		errMessage,
		at,
		eventType,
	).Error
}

func (r *repo) Ensure(ctx context.Context, conn *gorm.DB, sub *domain.Subscription) error {
	existing, err := r.FindByEventType(ctx, conn, sub.EventType)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	err = conn.WithContext(ctx).Create(sub).Error
	if db.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}

func (r *repo) HasDispatchRecord(ctx context.Context, conn *gorm.DB, userID int64, eventType string) (bool, error) {
	var count int64
	err := conn.WithContext(ctx).
		Model(&domain.DispatchRecord{}).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CreateDispatchRecord(ctx context.Context, conn *gorm.DB, record *domain.DispatchRecord) error {
	err := conn.WithContext(ctx).Create(record).Error
	if db.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}
