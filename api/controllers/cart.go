package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/api/middleware"
	"github.com/quicklinkhq/quicklink-backend/api/responses"
	"github.com/quicklinkhq/quicklink-backend/api/validators"
	cartsvc "github.com/quicklinkhq/quicklink-backend/internal/cart"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

func cartIdentity(r *http.Request) (cartsvc.Identity, error) {
	identity, ok := middleware.CartIdentityFromContext(r.Context())
	if !ok || !identity.Valid() {
		return cartsvc.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in or supply a guest key")
	}
	return identity, nil
}

// CartGet returns the owner's current cart snapshot.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		identity, err := cartIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Get(r.Context(), identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

type addCartItemRequest struct {
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	MenuItemID   *uuid.UUID      `json:"menu_item_id,omitempty"`
	Name         string          `json:"name" validate:"required,max=200"`
	PriceCents   int             `json:"price_cents" validate:"required,min=1"`
	Quantity     int             `json:"quantity" validate:"omitempty,min=1,max=99"`
	Image        *string         `json:"image,omitempty"`
	SellerID     *uuid.UUID      `json:"seller_id,omitempty"`
	RestaurantID *uuid.UUID      `json:"restaurant_id,omitempty"`
	Modifiers    types.Modifiers `json:"modifiers,omitempty"`
}

// CartAddItem appends or merges one catalog entry into the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		identity, err := cartIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.AddItem(r.Context(), identity, cartsvc.AddItemInput{
			ProductID:    body.ProductID,
			MenuItemID:   body.MenuItemID,
			Name:         body.Name,
			PriceCents:   body.PriceCents,
			Quantity:     body.Quantity,
			Image:        body.Image,
			SellerID:     body.SellerID,
			RestaurantID: body.RestaurantID,
			Modifiers:    body.Modifiers,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

// CartUpdateItem sets the quantity of one line. Quantity zero removes it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		identity, err := cartIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.UpdateQuantity(r.Context(), identity, itemID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// CartRemoveItem deletes one line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		identity, err := cartIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		snapshot, err := svc.RemoveItem(r.Context(), identity, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// CartClear empties the owner's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		identity, err := cartIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Clear(r.Context(), identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
