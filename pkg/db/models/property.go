package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// Property is a real-estate listing published by a property seller.
type Property struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PropertySellerID uuid.UUID       `gorm:"column:property_seller_id;type:uuid;not null;index"`
	Title            string          `gorm:"column:title;not null"`
	Description      *string         `gorm:"column:description"`
	PriceCents       *int            `gorm:"column:price_cents"`
	PropertyType     string          `gorm:"column:property_type;not null;index"`
	Bedrooms         *int            `gorm:"column:bedrooms"`
	Bathrooms        *int            `gorm:"column:bathrooms"`
	SizeSqm          *int            `gorm:"column:size_sqm"`
	Images           pq.StringArray  `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Location         *types.Location `gorm:"column:location;type:jsonb;serializer:json"`
	Address          string          `gorm:"column:address;not null"`
	ContactPhone     *string         `gorm:"column:contact_phone"`
	ContactEmail     *string         `gorm:"column:contact_email"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
