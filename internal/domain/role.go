package domain

import "strings"

// Role enumerates account roles known to the gateway.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RolePayroll  Role = "payroll"
	RoleEmployee Role = "employee"
)

type roleTraits struct {
	privileged bool
}

// roles is the closed set of recognised roles. Exactly one entry carries the privileged trait.
var roles = map[Role]roleTraits{
	RoleAdmin:    {privileged: true},
	RoleHR:       {},
	RolePayroll:  {},
	RoleEmployee: {},
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// Privileged reports whether r bypasses access policies entirely.
func (r Role) Privileged() bool {
	return roles[r].privileged
}

func (r Role) String() string {
	return string(r)
}

// ParseRole normalizes a stored role value. Unknown values are returned as-is with ok=false.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}
