package restaurants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
)

// Service exposes the food-delivery browse reads.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]RestaurantDTO, error)
	GetMenu(ctx context.Context, restaurantID uuid.UUID) (*Menu, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the restaurant service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "restaurant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]RestaurantDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}

	dtos := make([]RestaurantDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, restaurantFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetMenu(ctx context.Context, restaurantID uuid.UUID) (*Menu, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}

	restaurant, err := s.repo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	items, err := s.repo.ListAvailableMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu")
	}

	menu := &Menu{
		Restaurant: restaurantFromModel(restaurant),
		Sections:   []MenuSection{},
	}
	for i := range items {
		dto := menuItemFromModel(&items[i])
		if n := len(menu.Sections); n > 0 && menu.Sections[n-1].Category == dto.Category {
			menu.Sections[n-1].Items = append(menu.Sections[n-1].Items, dto)
			continue
		}
		menu.Sections = append(menu.Sections, MenuSection{
			Category: dto.Category,
			Items:    []MenuItemDTO{dto},
		})
	}
	return menu, nil
}
