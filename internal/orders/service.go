package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

// Service places orders from the authenticated cart and reads them back.
type Service interface {
	Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) ([]OrderDTO, error)
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error)
	ListMine(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error)
}

type cartAccessor interface {
	Get(ctx context.Context, identity cart.Identity) (*cart.Cart, error)
	Clear(ctx context.Context, identity cart.Identity) (*cart.Cart, error)
}

type orderRepository interface {
	Create(ctx context.Context, rows []models.Order) error
	FindByID(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo     orderRepository
	carts    cartAccessor
	notifier cart.Notifier
	logg     *logger.Logger
}

// NewService constructs the checkout service. The notifier may be nil.
func NewService(repo orderRepository, carts cartAccessor, notifier cart.Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repository required")
	}
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &service{repo: repo, carts: carts, notifier: notifier, logg: logg}, nil
}

// Checkout snapshots the customer's cart into one order per vertical,
// recomputing totals from the line prices, then clears the cart.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) ([]OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")
	}
	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	identity := cart.UserIdentity(customerID)
	current, err := s.carts.Get(ctx, identity)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	rows := buildOrders(customerID, current.Items, method, input)
	if err := s.repo.Create(ctx, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create orders")
	}

	if _, err := s.carts.Clear(ctx, identity); err != nil {
		// the orders are already placed; leave the stale cart to the client
		warnCtx := s.logg.WithField(ctx, "user_id", customerID.String())
		s.logg.Warn(warnCtx, "clear cart after checkout: "+err.Error())
	}

	if s.notifier != nil {
		title := "Order placed"
		message := fmt.Sprintf("%d order(s) placed, total KES %.2f", len(rows), float64(totalCents(rows))/100)
		_ = s.notifier.Notify(ctx, customerID, enums.NotificationKindOrder, title, message)
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, orderFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view orders")
	}
	order, err := s.repo.FindByID(ctx, customerID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := orderFromModel(order)
	return &dto, nil
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view orders")
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, orderFromModel(&rows[i]))
	}
	return dtos, nil
}

// buildOrders splits the cart by vertical: catalog products become a
// marketplace order and menu items a food order, each with totals
// recomputed from the snapshotted lines.
func buildOrders(customerID uuid.UUID, items []cart.LineItem, method enums.PaymentMethod, input CheckoutInput) []models.Order {
	grouped := map[enums.OrderType][]cart.LineItem{}
	ordering := []enums.OrderType{}
	for _, item := range items {
		orderType := enums.OrderTypeMarketplace
		if item.Type == enums.LineItemTypeFood {
			orderType = enums.OrderTypeFood
		}
		if _, seen := grouped[orderType]; !seen {
			ordering = append(ordering, orderType)
		}
		grouped[orderType] = append(grouped[orderType], item)
	}

	rows := make([]models.Order, 0, len(ordering))
	for _, orderType := range ordering {
		lines := grouped[orderType]

		snapshots := make(models.OrderItemSnapshots, 0, len(lines))
		subtotal := 0
		for _, line := range lines {
			subtotal += line.PriceCents * line.Quantity
			snapshots = append(snapshots, models.OrderItemSnapshot{
				LineItemID:   line.ID.String(),
				ProductID:    line.ProductID,
				MenuItemID:   line.MenuItemID,
				Name:         line.Name,
				PriceCents:   line.PriceCents,
				Quantity:     line.Quantity,
				Modifiers:    line.Modifiers,
				Type:         string(line.Type),
				SellerID:     line.SellerID,
				RestaurantID: line.RestaurantID,
			})
		}

		rows = append(rows, models.Order{
			ID:                   uuid.New(),
			CustomerID:           customerID,
			SellerID:             uniformRef(lines, func(l cart.LineItem) *uuid.UUID { return l.SellerID }),
			RestaurantID:         uniformRef(lines, func(l cart.LineItem) *uuid.UUID { return l.RestaurantID }),
			OrderType:            orderType,
			Items:                snapshots,
			SubtotalCents:        subtotal,
			DeliveryFeeCents:     0,
			TotalCents:           subtotal,
			Status:               enums.OrderStatusPending,
			PaymentMethod:        method,
			PaymentStatus:        enums.PaymentStatusPending,
			DeliveryAddress:      input.DeliveryAddress,
			DeliveryInstructions: input.DeliveryInstructions,
		})
	}
	return rows
}

// uniformRef returns the shared reference when every line agrees on one,
// otherwise nil.
func uniformRef(lines []cart.LineItem, pick func(cart.LineItem) *uuid.UUID) *uuid.UUID {
	var ref *uuid.UUID
	for _, line := range lines {
		candidate := pick(line)
		if candidate == nil {
			return nil
		}
		if ref == nil {
			ref = candidate
			continue
		}
		if *ref != *candidate {
			return nil
		}
	}
	return ref
}

func totalCents(rows []models.Order) int {
	total := 0
	for _, row := range rows {
		total += row.TotalCents
	}
	return total
}
