package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// CartItem persists one line of an authenticated user's cart. Exactly one
// of ProductID/MenuItemID is set; the pair discriminates marketplace items
// from food items.
type CartItem struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID    *uuid.UUID         `gorm:"column:product_id;type:uuid"`
	MenuItemID   *uuid.UUID         `gorm:"column:menu_item_id;type:uuid"`
	Name         string             `gorm:"column:name;not null"`
	PriceCents   int                `gorm:"column:price_cents;not null"`
	Quantity     int                `gorm:"column:quantity;not null"`
	Image        *string            `gorm:"column:image"`
	SellerID     *uuid.UUID         `gorm:"column:seller_id;type:uuid"`
	RestaurantID *uuid.UUID         `gorm:"column:restaurant_id;type:uuid"`
	Modifiers    types.Modifiers    `gorm:"column:modifiers;type:jsonb;serializer:json"`
	Type         enums.LineItemType `gorm:"column:type;type:line_item_type;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
