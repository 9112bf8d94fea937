package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/api/responses"
	"github.com/quicklinkhq/quicklink-backend/api/validators"
	ordersvc "github.com/quicklinkhq/quicklink-backend/internal/orders"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

type checkoutRequest struct {
	PaymentMethod        string          `json:"payment_method,omitempty"`
	DeliveryAddress      *types.Location `json:"delivery_address,omitempty"`
	DeliveryInstructions *string         `json:"delivery_instructions,omitempty" validate:"omitempty,max=500"`
}

// OrdersCheckout converts the customer's cart into one order per vertical.
func OrdersCheckout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.Checkout(r.Context(), customerID, ordersvc.CheckoutInput{
			PaymentMethod:        enums.PaymentMethod(body.PaymentMethod),
			DeliveryAddress:      body.DeliveryAddress,
			DeliveryInstructions: body.DeliveryInstructions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orders)
	}
}

// OrdersListMine returns the customer's order history, newest first.
func OrdersListMine(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListMine(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// OrdersGet returns one of the customer's own orders.
func OrdersGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		customerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.Get(r.Context(), customerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
