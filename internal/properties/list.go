package properties

import (
	"strings"

	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
)

// Sort names the supported property orderings.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort maps a query-string value onto a Sort. Blank defaults to newest.
func ParseSort(value string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort: "+value)
	}
}

func (s Sort) orderClause() string {
	switch s {
	case SortPriceAsc:
		return "price_cents ASC, id ASC"
	case SortPriceDesc:
		return "price_cents DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

// ListFilters narrows the property listing.
type ListFilters struct {
	PropertyType  *string `json:"property_type,omitempty"`
	MinBedrooms   *int    `json:"min_bedrooms,omitempty"`
	MaxPriceCents *int    `json:"max_price_cents,omitempty"`
	Query         string  `json:"q,omitempty"`
}

// ListInput captures filtering, ordering, and paging for a property search.
type ListInput struct {
	Filters ListFilters
	Sort    Sort
	Page    int
	Limit   int
}
