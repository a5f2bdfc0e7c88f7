package migration

import (
	"errors"

	accountdomain "github.com/revendahq/revenda/internal/account/domain"
	catalogdomain "github.com/revendahq/revenda/internal/catalog/domain"
	feedomain "github.com/revendahq/revenda/internal/feesettings/domain"
	webhookdomain "github.com/revendahq/revenda/internal/webhook/domain"
	"gorm.io/gorm"
)

// Run creates the schema from the domain models so the service is usable out
// of the box on postgres, mysql and sqlite alike.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	return conn.AutoMigrate(
		&accountdomain.User{},
		&catalogdomain.Product{},
		&catalogdomain.Variant{},
		&feedomain.FeeSettings{},
		&webhookdomain.Subscription{},
		&webhookdomain.DispatchRecord{},
	)
}
