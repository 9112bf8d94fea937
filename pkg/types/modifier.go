package types

// Modifier is an opaque customization attached to a food line item: a
// display name plus a signed price adjustment in minor units.
type Modifier struct {
	Name            string `json:"name"`
	PriceDeltaCents int    `json:"price_delta_cents"`
}

// Modifiers is stored as a jsonb column via GORM's json serializer.
type Modifiers []Modifier
