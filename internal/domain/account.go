package domain

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Account is the read-only view of an account record owned by the account store.
type Account struct {
	ID       string        `json:"id"`
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	Role     Role          `json:"role"`
	Status   AccountStatus `json:"status"`
}

// Active reports whether the account may authenticate.
func (a *Account) Active() bool {
	return a != nil && a.Status == AccountStatusActive
}

// Identity is the request-scoped projection of an authenticated account.
// Status is intentionally absent; it has already been checked.
type Identity struct {
	ID       string
	FullName string
	Email    string
	Role     Role
}

// IdentityOf projects an account into an Identity.
func IdentityOf(a *Account) Identity {
	return Identity{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Role:     a.Role,
	}
}
