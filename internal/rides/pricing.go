package rides

import (
	"github.com/shopspring/decimal"

	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
)

// VehiclePricing is the tariff card for one vehicle class, in minor units.
type VehiclePricing struct {
	Class         enums.VehicleClass `json:"class"`
	Name          string             `json:"name"`
	Seats         int                `json:"seats"`
	BaseFareCents int                `json:"base_fare_cents"`
	PerKmCents    int                `json:"per_km_cents"`
}

var tariffs = []VehiclePricing{
	{Class: enums.VehicleClassEconomy, Name: "Economy", Seats: 4, BaseFareCents: 15000, PerKmCents: 5000},
	{Class: enums.VehicleClassComfort, Name: "Comfort", Seats: 4, BaseFareCents: 20000, PerKmCents: 7000},
	{Class: enums.VehicleClassXL, Name: "XL", Seats: 6, BaseFareCents: 30000, PerKmCents: 9000},
}

// Tariffs returns the published tariff card.
func Tariffs() []VehiclePricing {
	out := make([]VehiclePricing, len(tariffs))
	copy(out, tariffs)
	return out
}

func tariffFor(class enums.VehicleClass) (VehiclePricing, error) {
	for _, t := range tariffs {
		if t.Class == class {
			return t, nil
		}
	}
	return VehiclePricing{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown vehicle class: "+string(class))
}

// EstimateFareCents prices a trip as base fare plus distance times the
// per-km rate, rounded to the nearest whole minor unit.
func EstimateFareCents(class enums.VehicleClass, distanceKm float64) (int, error) {
	if distanceKm <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "distance must be positive")
	}
	tariff, err := tariffFor(class)
	if err != nil {
		return 0, err
	}

	fare := decimal.NewFromFloat(distanceKm).
		Mul(decimal.NewFromInt(int64(tariff.PerKmCents))).
		Add(decimal.NewFromInt(int64(tariff.BaseFareCents))).
		Round(0)
	return int(fare.IntPart()), nil
}
