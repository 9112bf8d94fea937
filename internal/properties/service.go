package properties

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/pagination"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// PropertyDTO is the transport shape for a real-estate listing.
type PropertyDTO struct {
	ID               uuid.UUID       `json:"id"`
	PropertySellerID uuid.UUID       `json:"property_seller_id"`
	Title            string          `json:"title"`
	Description      *string         `json:"description,omitempty"`
	PriceCents       *int            `json:"price_cents,omitempty"`
	PropertyType     string          `json:"property_type"`
	Bedrooms         *int            `json:"bedrooms,omitempty"`
	Bathrooms        *int            `json:"bathrooms,omitempty"`
	SizeSqm          *int            `json:"size_sqm,omitempty"`
	Images           []string        `json:"images"`
	Location         *types.Location `json:"location,omitempty"`
	Address          string          `json:"address"`
	ContactPhone     *string         `json:"contact_phone,omitempty"`
	ContactEmail     *string         `json:"contact_email,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ListResult bundles a page of listings with paging bookkeeping.
type ListResult struct {
	Properties []PropertyDTO `json:"properties"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	HasMore    bool          `json:"has_more"`
}

// Service exposes the property search reads.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*PropertyDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the property service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "property repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Sort == "" {
		input.Sort = SortNewest
	}
	if input.Page < 1 {
		input.Page = 1
	}
	input.Limit = pagination.NormalizeLimit(input.Limit)

	rows, hasMore, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}

	dtos := make([]PropertyDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, propertyFromModel(&rows[i]))
	}
	return &ListResult{
		Properties: dtos,
		Page:       input.Page,
		Limit:      input.Limit,
		HasMore:    hasMore,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PropertyDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property id required")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	dto := propertyFromModel(property)
	return &dto, nil
}

func propertyFromModel(p *models.Property) PropertyDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return PropertyDTO{
		ID:               p.ID,
		PropertySellerID: p.PropertySellerID,
		Title:            p.Title,
		Description:      p.Description,
		PriceCents:       p.PriceCents,
		PropertyType:     p.PropertyType,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		SizeSqm:          p.SizeSqm,
		Images:           images,
		Location:         p.Location,
		Address:          p.Address,
		ContactPhone:     p.ContactPhone,
		ContactEmail:     p.ContactEmail,
		CreatedAt:        p.CreatedAt,
	}
}
