package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	Description  *string         `gorm:"column:description"`
	PriceCents   int             `gorm:"column:price_cents;not null"`
	Image        *string         `gorm:"column:image"`
	Category     string          `gorm:"column:category;not null"`
	Modifiers    types.Modifiers `gorm:"column:modifiers;type:jsonb;serializer:json"`
	IsAvailable  bool            `gorm:"column:is_available;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
