package types

import "fmt"

// Role identifies what an actor may do to a case. Roles are resolved by the
// authentication layer upstream; the core trusts the value it is given.
type Role string

const (
	// RoleClinician is the case-creating party (requests a consult)
	RoleClinician Role = "CLINICIAN"
	// RoleExpert is the specialist who picks up, resolves, or reopens cases
	RoleExpert Role = "EXPERT"
	// RoleCoordinator reassigns expert ownership directly, bypassing the
	// transition table
	RoleCoordinator Role = "COORDINATOR"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleClinician,
		RoleExpert,
		RoleCoordinator,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleClinician, RoleExpert, RoleCoordinator:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
