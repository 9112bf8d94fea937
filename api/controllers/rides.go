package controllers

import (
	"net/http"

	"github.com/quicklinkhq/quicklink-backend/api/responses"
	"github.com/quicklinkhq/quicklink-backend/api/validators"
	ridesvc "github.com/quicklinkhq/quicklink-backend/internal/rides"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// RidesTariffs lists the vehicle classes with their fare parameters.
func RidesTariffs(svc ridesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ride service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Tariffs())
	}
}

type estimateRideRequest struct {
	VehicleClass string  `json:"vehicle_class" validate:"required"`
	DistanceKm   float64 `json:"distance_km" validate:"required,gt=0"`
}

// RidesEstimate quotes a fare without creating a booking.
func RidesEstimate(svc ridesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ride service unavailable"))
			return
		}

		var body estimateRideRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		class, err := enums.ParseVehicleClass(body.VehicleClass)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle class"))
			return
		}

		estimate, err := svc.Estimate(r.Context(), ridesvc.EstimateInput{
			VehicleClass: class,
			DistanceKm:   body.DistanceKm,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimate)
	}
}

type requestRideRequest struct {
	VehicleClass  string         `json:"vehicle_class" validate:"required"`
	Pickup        types.Location `json:"pickup" validate:"required"`
	Dropoff       types.Location `json:"dropoff" validate:"required"`
	DistanceKm    float64        `json:"distance_km" validate:"required,gt=0"`
	PaymentMethod string         `json:"payment_method,omitempty"`
}

// RidesRequest books a ride for the authenticated customer.
func RidesRequest(svc ridesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ride service unavailable"))
			return
		}

		customerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body requestRideRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		class, err := enums.ParseVehicleClass(body.VehicleClass)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle class"))
			return
		}

		ride, err := svc.Request(r.Context(), customerID, ridesvc.RequestInput{
			VehicleClass:  class,
			Pickup:        body.Pickup,
			Dropoff:       body.Dropoff,
			DistanceKm:    body.DistanceKm,
			PaymentMethod: enums.PaymentMethod(body.PaymentMethod),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ride)
	}
}

// RidesListMine returns the customer's ride history, newest first.
func RidesListMine(svc ridesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ride service unavailable"))
			return
		}

		customerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rides, err := svc.ListMine(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rides)
	}
}
