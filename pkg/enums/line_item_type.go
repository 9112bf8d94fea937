package enums

import "fmt"

// LineItemType tags a cart line item as a catalog product or a restaurant menu item.
type LineItemType string

const (
	LineItemTypeProduct LineItemType = "product"
	LineItemTypeFood    LineItemType = "food"
)

var validLineItemTypes = []LineItemType{
	LineItemTypeProduct,
	LineItemTypeFood,
}

// IsValid reports whether the value matches the canonical line item type enum.
func (l LineItemType) IsValid() bool {
	for _, candidate := range validLineItemTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLineItemType converts the raw string to LineItemType.
func ParseLineItemType(value string) (LineItemType, error) {
	for _, candidate := range validLineItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item type %q", value)
}
