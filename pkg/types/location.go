package types

// Location captures a named geographic point for rides and property listings.
type Location struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}
