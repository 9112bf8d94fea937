package rides

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
)

// Repository persists taxi bookings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new ride row.
func (r *Repository) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	if err := r.db.WithContext(ctx).Create(ride).Error; err != nil {
		return nil, err
	}
	return ride, nil
}

// FindByID loads a ride by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	if err := r.db.WithContext(ctx).First(&ride, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// ListByCustomer returns the customer's bookings, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Ride, error) {
	var rows []models.Ride
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}
