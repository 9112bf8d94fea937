package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	"github.com/quicklinkhq/quicklink-backend/pkg/types"
)

// Ride is a taxi booking. Driver assignment happens out of band; newly
// requested rides stay pending with a nil driver.
type Ride struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	DriverID        *uuid.UUID          `gorm:"column:driver_id;type:uuid"`
	VehicleClass    enums.VehicleClass  `gorm:"column:vehicle_class;type:vehicle_class;not null"`
	PickupLocation  types.Location      `gorm:"column:pickup_location;type:jsonb;serializer:json"`
	DropoffLocation types.Location      `gorm:"column:dropoff_location;type:jsonb;serializer:json"`
	FareCents       int                 `gorm:"column:fare_cents;not null"`
	DistanceKm      float64             `gorm:"column:distance_km;not null"`
	Status          enums.RideStatus    `gorm:"column:status;type:ride_status;not null;default:'pending'"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
