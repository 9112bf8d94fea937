package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// RestaurantDTO is the transport shape for a food vendor profile.
type RestaurantDTO struct {
	ID                   uuid.UUID `json:"id"`
	SellerID             uuid.UUID `json:"seller_id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	Image                *string   `json:"image,omitempty"`
	CuisineType          *string   `json:"cuisine_type,omitempty"`
	Rating               float64   `json:"rating"`
	ReviewsCount         int       `json:"reviews_count"`
	DeliveryFeeCents     int       `json:"delivery_fee_cents"`
	MinOrderCents        int       `json:"min_order_cents"`
	EstimatedDeliveryMin int       `json:"estimated_delivery_min"`
	IsOpen               bool      `json:"is_open"`
	CreatedAt            time.Time `json:"created_at"`
}

// MenuItemDTO is one orderable dish.
type MenuItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	PriceCents   int             `json:"price_cents"`
	Image        *string         `json:"image,omitempty"`
	Category     string          `json:"category"`
	Modifiers    types.Modifiers `json:"modifiers,omitempty"`
}

// MenuSection groups the available dishes under one menu category.
type MenuSection struct {
	Category string        `json:"category"`
	Items    []MenuItemDTO `json:"items"`
}

// Menu is a restaurant profile plus its grouped menu.
type Menu struct {
	Restaurant RestaurantDTO `json:"restaurant"`
	Sections   []MenuSection `json:"sections"`
}

func restaurantFromModel(r *models.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:                   r.ID,
		SellerID:             r.SellerID,
		Name:                 r.Name,
		Description:          r.Description,
		Image:                r.Image,
		CuisineType:          r.CuisineType,
		Rating:               r.Rating,
		ReviewsCount:         r.ReviewsCount,
		DeliveryFeeCents:     r.DeliveryFeeCents,
		MinOrderCents:        r.MinOrderCents,
		EstimatedDeliveryMin: r.EstimatedDeliveryMin,
		IsOpen:               r.IsOpen,
		CreatedAt:            r.CreatedAt,
	}
}

func menuItemFromModel(m *models.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		PriceCents:   m.PriceCents,
		Image:        m.Image,
		Category:     m.Category,
		Modifiers:    m.Modifiers,
	}
}
