package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a food-delivery vendor profile.
type Restaurant struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID             uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	Name                 string    `gorm:"column:name;not null"`
	Description          *string   `gorm:"column:description"`
	Image                *string   `gorm:"column:image"`
	CuisineType          *string   `gorm:"column:cuisine_type;index"`
	Rating               float64   `gorm:"column:rating;not null;default:0"`
	ReviewsCount         int       `gorm:"column:reviews_count;not null;default:0"`
	DeliveryFeeCents     int       `gorm:"column:delivery_fee_cents;not null;default:0"`
	MinOrderCents        int       `gorm:"column:min_order_cents;not null;default:0"`
	EstimatedDeliveryMin int       `gorm:"column:estimated_delivery_min;not null;default:30"`
	IsOpen               bool      `gorm:"column:is_open;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
