package properties

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// Repository exposes reads over the properties table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of active properties matching the filters, with a
// one-row buffer to detect a next page.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Property, bool, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("is_active = ?", true)

	if input.Filters.PropertyType != nil {
		qb = qb.Where("property_type = ?", *input.Filters.PropertyType)
	}
	if input.Filters.MinBedrooms != nil {
		qb = qb.Where("bedrooms >= ?", *input.Filters.MinBedrooms)
	}
	if input.Filters.MaxPriceCents != nil {
		qb = qb.Where("price_cents <= ?", *input.Filters.MaxPriceCents)
	}
	if search := strings.TrimSpace(input.Filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(title) LIKE ? OR LOWER(address) LIKE ?)", pattern, pattern)
	}

	var rows []models.Property
	err := qb.Order(input.Sort.orderClause()).
		Offset((input.Page - 1) * input.Limit).
		Limit(input.Limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rows) > input.Limit
	if hasMore {
		rows = rows[:input.Limit]
	}
	return rows, hasMore, nil
}

// FindByID loads one active listing.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		First(&property, "id = ? AND is_active = ?", id, true).
		Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}
