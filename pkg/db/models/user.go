package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	FullName     *string         `gorm:"column:full_name"`
	Phone        *string         `gorm:"column:phone"`
	Role         enums.UserRole  `gorm:"column:role;type:user_role;not null;default:'customer'"`
	KYCStatus    enums.KYCStatus `gorm:"column:kyc_status;type:kyc_status;not null;default:'pending'"`
	ProfileImage *string         `gorm:"column:profile_image"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
