package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, user *User) error
	// FindSignedInBefore returns users whose last sign-in is non-null and
	// strictly older than the cutoff.
	FindSignedInBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]User, error)
}
