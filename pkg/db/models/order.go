package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// OrderItemSnapshot freezes a cart line at checkout time.
type OrderItemSnapshot struct {
	LineItemID   string          `json:"line_item_id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	MenuItemID   *uuid.UUID      `json:"menu_item_id,omitempty"`
	Name         string          `json:"name"`
	PriceCents   int             `json:"price_cents"`
	Quantity     int             `json:"quantity"`
	Modifiers    types.Modifiers `json:"modifiers,omitempty"`
	Type         string          `json:"type"`
	SellerID     *uuid.UUID      `json:"seller_id,omitempty"`
	RestaurantID *uuid.UUID      `json:"restaurant_id,omitempty"`
}

// OrderItemSnapshots is stored as a jsonb column.
type OrderItemSnapshots []OrderItemSnapshot

// Order captures a checkout across the marketplace and food verticals.
type Order struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID           uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	SellerID             *uuid.UUID          `gorm:"column:seller_id;type:uuid"`
	RestaurantID         *uuid.UUID          `gorm:"column:restaurant_id;type:uuid"`
	OrderType            enums.OrderType     `gorm:"column:order_type;type:order_type;not null"`
	Items                OrderItemSnapshots  `gorm:"column:items;type:jsonb;serializer:json"`
	SubtotalCents        int                 `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents     int                 `gorm:"column:delivery_fee_cents;not null;default:0"`
	TotalCents           int                 `gorm:"column:total_cents;not null"`
	Status               enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending'"`
	PaymentMethod        enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	PaymentStatus        enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	DeliveryAddress      *types.Location     `gorm:"column:delivery_address;type:jsonb;serializer:json"`
	DeliveryInstructions *string             `gorm:"column:delivery_instructions"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
