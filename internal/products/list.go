package products

import (
	"strings"

	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
)

// Sort names the supported catalog orderings.
type Sort string

const (
	SortName      Sort = "name"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortRating    Sort = "rating"
	SortReviews   Sort = "reviews"
)

// ParseSort maps a query-string value onto a Sort. Blank defaults to name.
func ParseSort(value string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortName:
		return SortName, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortRating:
		return SortRating, nil
	case SortReviews:
		return SortReviews, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort: "+value)
	}
}

func (s Sort) orderClause() string {
	switch s {
	case SortPriceAsc:
		return "p.price_cents ASC, p.id ASC"
	case SortPriceDesc:
		return "p.price_cents DESC, p.id ASC"
	case SortRating:
		return "p.rating DESC, p.id ASC"
	case SortReviews:
		return "p.reviews_count DESC, p.id ASC"
	default:
		return "LOWER(p.name) ASC, p.id ASC"
	}
}

// ListFilters describe the browse filters for the marketplace catalog.
type ListFilters struct {
	Category *string `json:"category,omitempty"`
	Query    string  `json:"q,omitempty"`
}

// ListInput captures filtering, ordering, and paging for a catalog listing.
type ListInput struct {
	Filters ListFilters
	Sort    Sort
	Page    int
	Limit   int
}
