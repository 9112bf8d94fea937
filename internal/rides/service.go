package rides

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// Notifier mirrors the cart notifier so ride bookings land in the
// user's notification feed.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationKind, title, message string) error
}

// EstimateInput asks for a price quote for one trip.
type EstimateInput struct {
	VehicleClass enums.VehicleClass `json:"vehicle_class"`
	DistanceKm   float64            `json:"distance_km"`
}

// Estimate is the quoted fare for a trip.
type Estimate struct {
	VehicleClass enums.VehicleClass `json:"vehicle_class"`
	DistanceKm   float64            `json:"distance_km"`
	FareCents    int                `json:"fare_cents"`
}

// RequestInput carries a booking request for the authenticated customer.
type RequestInput struct {
	VehicleClass  enums.VehicleClass
	Pickup        types.Location
	Dropoff       types.Location
	DistanceKm    float64
	PaymentMethod enums.PaymentMethod
}

// RideDTO is the transport shape of one booking.
type RideDTO struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	DriverID        *uuid.UUID          `json:"driver_id,omitempty"`
	VehicleClass    enums.VehicleClass  `json:"vehicle_class"`
	PickupLocation  types.Location      `json:"pickup_location"`
	DropoffLocation types.Location      `json:"dropoff_location"`
	FareCents       int                 `json:"fare_cents"`
	DistanceKm      float64             `json:"distance_km"`
	Status          enums.RideStatus    `json:"status"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Service exposes fare quoting and ride booking.
type Service interface {
	Tariffs() []VehiclePricing
	Estimate(ctx context.Context, input EstimateInput) (*Estimate, error)
	Request(ctx context.Context, customerID uuid.UUID, input RequestInput) (*RideDTO, error)
	ListMine(ctx context.Context, customerID uuid.UUID) ([]RideDTO, error)
}

type rideCreator interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Ride, error)
}

type service struct {
	repo     rideCreator
	notifier Notifier
}

// NewService constructs the taxi service. The notifier may be nil.
func NewService(repo rideCreator, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ride repository required")
	}
	return &service{repo: repo, notifier: notifier}, nil
}

func (s *service) Tariffs() []VehiclePricing {
	return Tariffs()
}

func (s *service) Estimate(_ context.Context, input EstimateInput) (*Estimate, error) {
	fare, err := EstimateFareCents(input.VehicleClass, input.DistanceKm)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		VehicleClass: input.VehicleClass,
		DistanceKm:   input.DistanceKm,
		FareCents:    fare,
	}, nil
}

func (s *service) Request(ctx context.Context, customerID uuid.UUID, input RequestInput) (*RideDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to book a ride")
	}
	if strings.TrimSpace(input.Pickup.Label) == "" || strings.TrimSpace(input.Dropoff.Label) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup and dropoff are required")
	}
	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	fare, err := EstimateFareCents(input.VehicleClass, input.DistanceKm)
	if err != nil {
		return nil, err
	}

	ride := &models.Ride{
		ID:              uuid.New(),
		CustomerID:      customerID,
		VehicleClass:    input.VehicleClass,
		PickupLocation:  input.Pickup,
		DropoffLocation: input.Dropoff,
		FareCents:       fare,
		DistanceKm:      input.DistanceKm,
		Status:          enums.RideStatusPending,
		PaymentMethod:   method,
		PaymentStatus:   enums.PaymentStatusPending,
	}
	created, err := s.repo.Create(ctx, ride)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ride")
	}

	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, customerID, enums.NotificationKindRide,
			"Ride requested", "Looking for a driver near "+input.Pickup.Label)
	}

	dto := rideFromModel(created)
	return &dto, nil
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID) ([]RideDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view rides")
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rides")
	}
	dtos := make([]RideDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, rideFromModel(&rows[i]))
	}
	return dtos, nil
}

func rideFromModel(r *models.Ride) RideDTO {
	return RideDTO{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		DriverID:        r.DriverID,
		VehicleClass:    r.VehicleClass,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		FareCents:       r.FareCents,
		DistanceKm:      r.DistanceKm,
		Status:          r.Status,
		PaymentMethod:   r.PaymentMethod,
		PaymentStatus:   r.PaymentStatus,
		CreatedAt:       r.CreatedAt,
	}
}
