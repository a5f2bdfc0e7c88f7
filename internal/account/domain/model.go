package domain

import "time"

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string     `json:"display_name" gorm:"type:text;not null"`
	Role         string     `json:"role" gorm:"type:text;not null;default:'reseller'"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
