package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a marketplace catalog listing.
type Product struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     uuid.UUID      `gorm:"column:seller_id;type:uuid;not null;index"`
	Name         string         `gorm:"column:name;not null"`
	Description  *string        `gorm:"column:description"`
	PriceCents   int            `gorm:"column:price_cents;not null"`
	Stock        int            `gorm:"column:stock;not null;default:0"`
	Images       pq.StringArray `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Category     string         `gorm:"column:category;not null;index"`
	SKU          *string        `gorm:"column:sku"`
	Rating       float64        `gorm:"column:rating;not null;default:0"`
	ReviewsCount int            `gorm:"column:reviews_count;not null;default:0"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	Seller       *Seller        `gorm:"foreignKey:SellerID"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
