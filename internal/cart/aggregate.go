package cart

import (
	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// LineItem is one cart line. Exactly one of ProductID/MenuItemID is set
// and decides the Type tag.
type LineItem struct {
	ID           uuid.UUID          `json:"id"`
	ProductID    *uuid.UUID         `json:"product_id,omitempty"`
	MenuItemID   *uuid.UUID         `json:"menu_item_id,omitempty"`
	Name         string             `json:"name"`
	PriceCents   int                `json:"price_cents"`
	Quantity     int                `json:"quantity"`
	Image        *string            `json:"image,omitempty"`
	SellerID     *uuid.UUID         `json:"seller_id,omitempty"`
	RestaurantID *uuid.UUID         `json:"restaurant_id,omitempty"`
	Modifiers    types.Modifiers    `json:"modifiers,omitempty"`
	Type         enums.LineItemType `json:"type"`
}

// SameReference reports whether two lines point at the same catalog
// entry. A nil reference never matches another nil.
func (l LineItem) SameReference(other LineItem) bool {
	if l.ProductID != nil && other.ProductID != nil && *l.ProductID == *other.ProductID {
		return true
	}
	if l.MenuItemID != nil && other.MenuItemID != nil && *l.MenuItemID == *other.MenuItemID {
		return true
	}
	return false
}

// Cart is the aggregate snapshot returned by every operation. ItemCount
// and SubtotalCents are recomputed from Items on every build, never
// patched incrementally.
type Cart struct {
	Items         []LineItem `json:"items"`
	ItemCount     int        `json:"item_count"`
	SubtotalCents int        `json:"subtotal_cents"`
}

func buildCart(items []LineItem) *Cart {
	if items == nil {
		items = []LineItem{}
	}
	cart := &Cart{Items: items}
	for _, item := range items {
		cart.ItemCount += item.Quantity
		cart.SubtotalCents += item.PriceCents * item.Quantity
	}
	return cart
}
