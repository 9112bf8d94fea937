package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/api/responses"
	"github.com/quicklinkhq/quicklink-backend/api/validators"
	propertysvc "github.com/quicklinkhq/quicklink-backend/internal/properties"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/pagination"
)

// PropertiesList serves the property search endpoint.
func PropertiesList(svc propertysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "property service unavailable"))
			return
		}

		sort, err := propertysvc.ParseSort(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := propertysvc.ListInput{
			Sort:  sort,
			Page:  page,
			Limit: limit,
		}
		input.Filters.Query = validators.SanitizeString(r.URL.Query().Get("q"), 200)
		if propertyType := strings.TrimSpace(r.URL.Query().Get("property_type")); propertyType != "" {
			input.Filters.PropertyType = &propertyType
		}
		if minBedrooms, err := validators.ParseQueryInt(r, "min_bedrooms", 0, 0, 50); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if minBedrooms > 0 {
			input.Filters.MinBedrooms = &minBedrooms
		}
		if maxPrice, err := validators.ParseQueryInt(r, "max_price_cents", 0, 0, 1<<31-1); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if maxPrice > 0 {
			input.Filters.MaxPriceCents = &maxPrice
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PropertiesGet serves one listing's detail view.
func PropertiesGet(svc propertysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "property service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "propertyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid property id"))
			return
		}

		property, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, property)
	}
}
