package auth

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// ParseRole normalizes a stored role string. The second return value is
// false for anything outside the three known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleManager:
		return RoleManager, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleEmployee || r == RoleManager
}

// CanEditAnyOrder reports whether the role may edit any order regardless of
// owner or paid state. Employees and managers have identical order-editing
// capability.
func (r Role) CanEditAnyOrder() bool {
	return r == RoleEmployee || r == RoleManager
}

// CanManage reports whether the role may mutate the catalog and user roles.
func (r Role) CanManage() bool {
	return r == RoleManager
}
