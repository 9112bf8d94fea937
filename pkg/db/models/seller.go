package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller is the shop profile behind marketplace products.
type Seller struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	ShopName        string    `gorm:"column:shop_name;not null"`
	ShopDescription *string   `gorm:"column:shop_description"`
	ShopImage       *string   `gorm:"column:shop_image"`
	IsVerified      bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
