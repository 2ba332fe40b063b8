package house

import "fmt"

// Role is the ordinal membership role within a house. Every authorization
// gate compares roles through AtLeast; no other comparison exists.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
)

func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r meets the required minimum role.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level() && r.Level() > 0
}

func (r Role) Valid() bool {
	return r.Level() > 0
}

func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// RoleNames lists the assignable role names for enum validation.
func RoleNames() []string {
	return []string{string(RoleOwner), string(RoleAdmin), string(RoleUser)}
}
