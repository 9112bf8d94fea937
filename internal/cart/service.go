package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// Notifier records a user-visible mutation outcome. Failures are soft;
// the cart operation itself has already succeeded when Notify runs.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationKind, title, message string) error
}

// Service exposes the cart aggregate operations. Every mutation loads
// the identity's list, derives the complete new list, persists it as an
// atomic replace, and only then returns the rebuilt snapshot.
type Service interface {
	Get(ctx context.Context, identity Identity) (*Cart, error)
	AddItem(ctx context.Context, identity Identity, input AddItemInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, identity Identity, itemID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, identity Identity, itemID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, identity Identity) (*Cart, error)
}

// AddItemInput carries one catalog entry into the cart. Exactly one of
// ProductID/MenuItemID must be set; Quantity ≤ 0 defaults to 1.
type AddItemInput struct {
	ProductID    *uuid.UUID
	MenuItemID   *uuid.UUID
	Name         string
	PriceCents   int
	Quantity     int
	Image        *string
	SellerID     *uuid.UUID
	RestaurantID *uuid.UUID
	Modifiers    types.Modifiers
}

type service struct {
	authed   Backend
	guest    Backend
	locks    *identityLocks
	notifier Notifier
	logg     *logger.Logger
}

// NewService builds a cart service routing each identity kind to its
// backend. The notifier is optional.
func NewService(authed, guest Backend, notifier Notifier, logg *logger.Logger) (Service, error) {
	if authed == nil {
		return nil, fmt.Errorf("authenticated backend required")
	}
	if guest == nil {
		return nil, fmt.Errorf("guest backend required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		authed:   authed,
		guest:    guest,
		locks:    newIdentityLocks(),
		notifier: notifier,
		logg:     logg,
	}, nil
}

func (s *service) backendFor(identity Identity) Backend {
	if identity.Kind == IdentityAuthenticated {
		return s.authed
	}
	return s.guest
}

// Get loads the identity's cart and returns the derived snapshot.
func (s *service) Get(ctx context.Context, identity Identity) (*Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}

	items, err := s.backendFor(identity).Load(ctx, identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return buildCart(items), nil
}

// AddItem appends the entry or, when a line already references the same
// product or menu item, increments that line's quantity instead.
func (s *service) AddItem(ctx context.Context, identity Identity, input AddItemInput) (*Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}
	candidate, err := newLineItem(input)
	if err != nil {
		return nil, err
	}

	release := s.locks.acquire(identity.LockKey())
	defer release()

	items, err := s.backendFor(identity).Load(ctx, identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	matched := false
	next := make([]LineItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].SameReference(candidate) {
			next[i].Quantity += candidate.Quantity
			matched = true
			break
		}
	}
	if !matched {
		next = append(next, candidate)
	}

	if err := s.backendFor(identity).Replace(ctx, identity, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}

	s.notify(ctx, identity, "Added to cart", fmt.Sprintf("%s added to your cart", candidate.Name))
	return buildCart(next), nil
}

// UpdateQuantity sets the line's quantity. A quantity ≤ 0 removes the
// line; an unknown id leaves the list untouched and just returns the
// recomputed snapshot.
func (s *service) UpdateQuantity(ctx context.Context, identity Identity, itemID uuid.UUID, quantity int) (*Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}

	release := s.locks.acquire(identity.LockKey())
	defer release()

	items, err := s.backendFor(identity).Load(ctx, identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if quantity <= 0 {
		return s.removeLocked(ctx, identity, items, itemID)
	}

	changed := false
	next := make([]LineItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == itemID {
			if next[i].Quantity != quantity {
				next[i].Quantity = quantity
				changed = true
			}
			break
		}
	}
	if !changed {
		return buildCart(next), nil
	}

	if err := s.backendFor(identity).Replace(ctx, identity, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return buildCart(next), nil
}

// RemoveItem drops the line with the given id. Unknown ids are a no-op.
func (s *service) RemoveItem(ctx context.Context, identity Identity, itemID uuid.UUID) (*Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}

	release := s.locks.acquire(identity.LockKey())
	defer release()

	items, err := s.backendFor(identity).Load(ctx, identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.removeLocked(ctx, identity, items, itemID)
}

// Clear empties the identity's cart.
func (s *service) Clear(ctx context.Context, identity Identity) (*Cart, error) {
	if !identity.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}

	release := s.locks.acquire(identity.LockKey())
	defer release()

	if err := s.backendFor(identity).Replace(ctx, identity, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}

	s.notify(ctx, identity, "Cart cleared", "All items were removed from your cart")
	return buildCart(nil), nil
}

// removeLocked assumes the identity lock is already held.
func (s *service) removeLocked(ctx context.Context, identity Identity, items []LineItem, itemID uuid.UUID) (*Cart, error) {
	var removed *LineItem
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID == itemID {
			dropped := item
			removed = &dropped
			continue
		}
		next = append(next, item)
	}
	if removed == nil {
		return buildCart(next), nil
	}

	if err := s.backendFor(identity).Replace(ctx, identity, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}

	s.notify(ctx, identity, "Removed from cart", fmt.Sprintf("%s removed from your cart", removed.Name))
	return buildCart(next), nil
}

func (s *service) notify(ctx context.Context, identity Identity, title, message string) {
	if s.notifier == nil || identity.Kind != IdentityAuthenticated {
		return
	}
	if err := s.notifier.Notify(ctx, identity.UserID, enums.NotificationKindCart, title, message); err != nil {
		s.logg.Warn(s.logg.WithIdentity(ctx, identity.LockKey()), fmt.Sprintf("cart notification failed: %v", err))
	}
}

func newLineItem(input AddItemInput) (LineItem, error) {
	hasProduct := input.ProductID != nil && *input.ProductID != uuid.Nil
	hasMenuItem := input.MenuItemID != nil && *input.MenuItemID != uuid.Nil
	if hasProduct == hasMenuItem {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of product_id or menu_item_id is required")
	}
	if input.Name == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.PriceCents < 0 {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}

	// Zero-valued refs are treated as absent so they can never match
	// another zero ref later.
	if !hasProduct {
		input.ProductID = nil
	}
	if !hasMenuItem {
		input.MenuItemID = nil
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	itemType := enums.LineItemTypeProduct
	if hasMenuItem {
		itemType = enums.LineItemTypeFood
	}

	return LineItem{
		ID:           uuid.New(),
		ProductID:    input.ProductID,
		MenuItemID:   input.MenuItemID,
		Name:         input.Name,
		PriceCents:   input.PriceCents,
		Quantity:     quantity,
		Image:        input.Image,
		SellerID:     input.SellerID,
		RestaurantID: input.RestaurantID,
		Modifiers:    input.Modifiers,
		Type:         itemType,
	}, nil
}
