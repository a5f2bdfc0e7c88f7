package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	feerepository "github.com/revendahq/revenda/internal/feesettings/repository"
	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
	webhookrepository "github.com/revendahq/revenda/internal/webhook/repository"
	"gorm.io/gorm"
)

// EnsureDefaults provisions the fee configuration singleton and one webhook
// subscription row per known event type.
func EnsureDefaults(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	fees := feerepository.Provide()
	webhooks := webhookrepository.Provide()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fees.Ensure(ctx, tx, node.Generate().Int64()); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, eventType := range webhookdomain.KnownEventTypes() {
			sub := &webhookdomain.Subscription{
				ID:        node.Generate().Int64(),
				EventType: eventType,
				Active:    false,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := webhooks.Ensure(ctx, tx, sub); err != nil {
				return err
			}
		}
		return nil
	})
}
