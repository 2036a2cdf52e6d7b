package auth

import (
	"errors"
	"fmt"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

var (
	// ErrUnauthenticated is returned when authorization runs without a bound identity.
	ErrUnauthenticated = errors.New("no authenticated identity")
	// ErrRoleNotPermitted is matched by every RoleDeniedError.
	ErrRoleNotPermitted = errors.New("role not permitted")
)

// Policy is the set of roles a protected operation accepts, in declaration order.
// The zero value is the empty policy, which only the privileged role passes.
type Policy struct {
	roles []domain.Role
	set   map[domain.Role]struct{}
}

// PolicyOf builds a policy from an explicit collection of roles.
func PolicyOf(roles []domain.Role) Policy {
	p := Policy{set: make(map[domain.Role]struct{}, len(roles))}
	for _, role := range roles {
		if _, dup := p.set[role]; dup {
			continue
		}
		p.set[role] = struct{}{}
		p.roles = append(p.roles, role)
	}
	return p
}

// PolicyFor builds a policy from individual role arguments.
func PolicyFor(roles ...domain.Role) Policy {
	return PolicyOf(roles)
}

// Allows reports set membership only; the privileged override lives in Decide.
func (p Policy) Allows(role domain.Role) bool {
	_, ok := p.set[role]
	return ok
}

// Roles returns a copy of the accepted roles.
func (p Policy) Roles() []domain.Role {
	out := make([]domain.Role, len(p.roles))
	copy(out, p.roles)
	return out
}

// Names returns the accepted roles as strings.
func (p Policy) Names() []string {
	out := make([]string, len(p.roles))
	for i, role := range p.roles {
		out[i] = role.String()
	}
	return out
}

// Empty reports whether the policy accepts no role.
func (p Policy) Empty() bool {
	return len(p.roles) == 0
}

// RoleDeniedError carries the denied role and the roles that would have been accepted.
type RoleDeniedError struct {
	Role    domain.Role
	Allowed []domain.Role
}

func (e *RoleDeniedError) Error() string {
	return fmt.Sprintf("role %q not permitted", e.Role)
}

func (e *RoleDeniedError) Is(target error) bool {
	return target == ErrRoleNotPermitted
}

// Decide applies the access rule to an authenticated identity:
// privileged role first, then policy membership, otherwise deny.
func Decide(identity *domain.Identity, policy Policy) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if identity.Role.Privileged() {
		return nil
	}
	if policy.Allows(identity.Role) {
		return nil
	}
	return &RoleDeniedError{Role: identity.Role, Allowed: policy.Roles()}
}
