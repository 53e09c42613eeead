package models

import "strings"

// Role is the closed set of user roles. Anything outside the set collapses
// to RoleUser, the least-privileged default.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RolePremium Role = "PREMIUM"
)

// ParseRole normalizes the input and maps it onto the closed role set.
// Unknown or empty input yields RoleUser.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RolePremium:
		return RolePremium
	default:
		return RoleUser
	}
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RolePremium:
		return true
	}
	return false
}
