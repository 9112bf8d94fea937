package enums

import "fmt"

// UserRole describes the allowed values for the users.role column.
type UserRole string

const (
	UserRoleCustomer       UserRole = "customer"
	UserRoleSeller         UserRole = "seller"
	UserRoleDriver         UserRole = "driver"
	UserRolePropertySeller UserRole = "property_seller"
	UserRoleAdmin          UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleSeller,
	UserRoleDriver,
	UserRolePropertySeller,
	UserRoleAdmin,
}

// IsValid reports whether the value matches the canonical user role enum.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts the raw string to UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
