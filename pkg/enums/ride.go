package enums

import "fmt"

// VehicleClass selects the taxi pricing tier.
type VehicleClass string

const (
	VehicleClassEconomy VehicleClass = "economy"
	VehicleClassComfort VehicleClass = "comfort"
	VehicleClassXL      VehicleClass = "xl"
)

var validVehicleClasses = []VehicleClass{
	VehicleClassEconomy,
	VehicleClassComfort,
	VehicleClassXL,
}

// IsValid reports whether the value matches the canonical vehicle class enum.
func (v VehicleClass) IsValid() bool {
	for _, candidate := range validVehicleClasses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleClass converts the raw string to VehicleClass.
func ParseVehicleClass(value string) (VehicleClass, error) {
	for _, candidate := range validVehicleClasses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle class %q", value)
}

// RideStatus tracks a taxi booking lifecycle. Driver matching and live
// tracking are out of scope; rides stay pending until operated on elsewhere.
type RideStatus string

const (
	RideStatusPending       RideStatus = "pending"
	RideStatusAccepted      RideStatus = "accepted"
	RideStatusDriverArrived RideStatus = "driver_arrived"
	RideStatusInProgress    RideStatus = "in_progress"
	RideStatusCompleted     RideStatus = "completed"
	RideStatusCancelled     RideStatus = "cancelled"
)

func (r RideStatus) IsValid() bool {
	switch r {
	case RideStatusPending, RideStatusAccepted, RideStatusDriverArrived,
		RideStatusInProgress, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}
