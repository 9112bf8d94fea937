package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/api/responses"
	restaurantsvc "github.com/quicklinkhq/quicklink-backend/internal/restaurants"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
)

// RestaurantsList serves the food vertical's restaurant browse endpoint.
func RestaurantsList(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		var filters restaurantsvc.ListFilters
		filters.OpenOnly = strings.EqualFold(r.URL.Query().Get("open"), "true")
		if cuisine := strings.TrimSpace(r.URL.Query().Get("cuisine")); cuisine != "" {
			filters.Cuisine = &cuisine
		}

		restaurants, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, restaurants)
	}
}

// RestaurantsMenu serves one restaurant's menu grouped by category.
func RestaurantsMenu(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "restaurantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}

		menu, err := svc.GetMenu(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, menu)
	}
}
