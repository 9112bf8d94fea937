package restaurants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// Repository exposes reads over the restaurants and menu_items tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilters narrows the restaurant listing.
type ListFilters struct {
	OpenOnly bool
	Cuisine  *string
}

// List returns restaurants ordered by rating, best first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Restaurant, error) {
	qb := r.db.WithContext(ctx).Model(&models.Restaurant{})
	if filters.OpenOnly {
		qb = qb.Where("is_open = ?", true)
	}
	if filters.Cuisine != nil {
		qb = qb.Where("cuisine_type = ?", *filters.Cuisine)
	}

	var rows []models.Restaurant
	err := qb.Order("rating DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads one restaurant profile.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListAvailableMenuItems returns the orderable dishes for a restaurant,
// ordered by category then name for stable menu grouping.
func (r *Repository) ListAvailableMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	var rows []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("category ASC").
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
