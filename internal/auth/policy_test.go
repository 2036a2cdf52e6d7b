package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

var allRoles = []domain.Role{domain.RoleAdmin, domain.RoleHR, domain.RolePayroll, domain.RoleEmployee}

func identityWith(role domain.Role) *domain.Identity {
	return &domain.Identity{ID: "id-" + string(role), FullName: "Test", Email: "t@example.com", Role: role}
}

func TestDecide(t *testing.T) {
	t.Run("employee denied by hr and admin policy", func(t *testing.T) {
		err := Decide(identityWith(domain.RoleEmployee), PolicyFor(domain.RoleHR, domain.RoleAdmin))
		require.ErrorIs(t, err, ErrRoleNotPermitted)

		var denied *RoleDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, domain.RoleEmployee, denied.Role)
		assert.Equal(t, []domain.Role{domain.RoleHR, domain.RoleAdmin}, denied.Allowed)
	})

	t.Run("admin allowed by empty policy", func(t *testing.T) {
		assert.NoError(t, Decide(identityWith(domain.RoleAdmin), PolicyFor()))
		assert.NoError(t, Decide(identityWith(domain.RoleAdmin), PolicyOf(nil)))
		assert.NoError(t, Decide(identityWith(domain.RoleAdmin), Policy{}))
	})

	t.Run("admin override ignores policy contents", func(t *testing.T) {
		for _, policy := range []Policy{
			PolicyFor(domain.RoleEmployee),
			PolicyFor(domain.RolePayroll, domain.RoleHR),
			PolicyOf([]domain.Role{"auditor"}),
		} {
			assert.NoError(t, Decide(identityWith(domain.RoleAdmin), policy))
		}
	})

	t.Run("empty policy denies every non privileged role", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleHR, domain.RolePayroll, domain.RoleEmployee, "contractor"} {
			err := Decide(identityWith(role), PolicyFor())
			assert.ErrorIs(t, err, ErrRoleNotPermitted, string(role))
		}
	})

	t.Run("membership decides for non privileged roles", func(t *testing.T) {
		policies := [][]domain.Role{
			{},
			{domain.RoleHR},
			{domain.RoleHR, domain.RolePayroll},
			{domain.RoleEmployee, domain.RolePayroll, domain.RoleHR},
		}
		for _, roles := range policies {
			policy := PolicyOf(roles)
			for _, role := range allRoles {
				if role.Privileged() {
					continue
				}
				err := Decide(identityWith(role), policy)
				if containsRole(roles, role) {
					assert.NoError(t, err, "%s in %v", role, roles)
				} else {
					assert.ErrorIs(t, err, ErrRoleNotPermitted, "%s not in %v", role, roles)
				}
			}
		}
	})

	t.Run("no identity is unauthenticated", func(t *testing.T) {
		err := Decide(nil, PolicyFor(domain.RoleHR))
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.NotErrorIs(t, err, ErrRoleNotPermitted)
	})
}

func TestPolicyCallingConventionsAgree(t *testing.T) {
	roleSets := [][]domain.Role{
		nil,
		{domain.RoleHR},
		{domain.RoleHR, domain.RolePayroll},
		{domain.RolePayroll, domain.RoleHR, domain.RolePayroll},
		{domain.RoleEmployee, domain.RoleAdmin},
	}

	for _, roles := range roleSets {
		fromList := PolicyOf(roles)
		fromArgs := PolicyFor(roles...)
		assert.Equal(t, fromList.Roles(), fromArgs.Roles())

		for _, role := range append(allRoles, "contractor") {
			identity := identityWith(role)
			assert.Equal(t, Decide(identity, fromList), Decide(identity, fromArgs), "%s / %v", role, roles)
		}
	}
}

func TestPolicyOf(t *testing.T) {
	input := []domain.Role{domain.RolePayroll, domain.RoleHR, domain.RolePayroll}
	policy := PolicyOf(input)

	assert.Equal(t, []domain.Role{domain.RolePayroll, domain.RoleHR}, policy.Roles())
	assert.Equal(t, []string{"payroll", "hr"}, policy.Names())
	assert.False(t, policy.Empty())
	assert.True(t, PolicyFor().Empty())

	input[0] = domain.RoleEmployee
	assert.False(t, policy.Allows(domain.RoleEmployee))

	roles := policy.Roles()
	roles[0] = domain.RoleEmployee
	assert.Equal(t, []domain.Role{domain.RolePayroll, domain.RoleHR}, policy.Roles())
}

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
