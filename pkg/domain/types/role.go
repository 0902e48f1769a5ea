package types

import "fmt"

// Role gates what a signed-in user may do
type Role string

const (
	RoleUser       Role = "user"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// AllRoles returns all roles, least privileged first
func AllRoles() []Role {
	return []Role{RoleUser, RoleSupervisor, RoleAdmin}
}

func (r Role) IsValid() bool {
	return r.level() > 0
}

func (r Role) level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleSupervisor:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r grants everything min grants
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && r.level() >= min.level()
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
