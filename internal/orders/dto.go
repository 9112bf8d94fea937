package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// CheckoutInput carries the buyer's settlement and delivery choices.
type CheckoutInput struct {
	PaymentMethod        enums.PaymentMethod
	DeliveryAddress      *types.Location
	DeliveryInstructions *string
}

// OrderDTO is the transport shape of one placed order.
type OrderDTO struct {
	ID                   uuid.UUID                 `json:"id"`
	CustomerID           uuid.UUID                 `json:"customer_id"`
	SellerID             *uuid.UUID                `json:"seller_id,omitempty"`
	RestaurantID         *uuid.UUID                `json:"restaurant_id,omitempty"`
	OrderType            enums.OrderType           `json:"order_type"`
	Items                models.OrderItemSnapshots `json:"items"`
	SubtotalCents        int                       `json:"subtotal_cents"`
	DeliveryFeeCents     int                       `json:"delivery_fee_cents"`
	TotalCents           int                       `json:"total_cents"`
	Status               enums.OrderStatus         `json:"status"`
	PaymentMethod        enums.PaymentMethod       `json:"payment_method"`
	PaymentStatus        enums.PaymentStatus       `json:"payment_status"`
	DeliveryAddress      *types.Location           `json:"delivery_address,omitempty"`
	DeliveryInstructions *string                   `json:"delivery_instructions,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
}

func orderFromModel(o *models.Order) OrderDTO {
	items := o.Items
	if items == nil {
		items = models.OrderItemSnapshots{}
	}
	return OrderDTO{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		SellerID:             o.SellerID,
		RestaurantID:         o.RestaurantID,
		OrderType:            o.OrderType,
		Items:                items,
		SubtotalCents:        o.SubtotalCents,
		DeliveryFeeCents:     o.DeliveryFeeCents,
		TotalCents:           o.TotalCents,
		Status:               o.Status,
		PaymentMethod:        o.PaymentMethod,
		PaymentStatus:        o.PaymentStatus,
		DeliveryAddress:      o.DeliveryAddress,
		DeliveryInstructions: o.DeliveryInstructions,
		CreatedAt:            o.CreatedAt,
	}
}
