package repository

import (
	"context"
	"time"

	"github.com/revendahq/revenda/internal/account/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, email, display_name, role, last_sign_in_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.Role,
		user.LastSignInAt,
		user.CreatedAt,
	).Error
}

func (r *repo) FindSignedInBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]domain.User, error) {
	var users []domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, email, display_name, role, last_sign_in_at, created_at
		 FROM users WHERE last_sign_in_at IS NOT NULL AND last_sign_in_at < ? ORDER BY last_sign_in_at ASC`,
		cutoff,
	).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
