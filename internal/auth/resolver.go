package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
	"github.com/sharath2004-tech/odoo-sub001/internal/repository"
)

var (
	// ErrAccountNotFound means the token subject no longer resolves to an account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountDeactivated means the account exists but is not active.
	ErrAccountDeactivated = errors.New("account deactivated")
	// ErrStoreUnavailable wraps timeouts, cancellation and connectivity failures from the store.
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// Resolver re-validates a verified subject against the live account store.
type Resolver struct {
	accounts repository.AccountRepository
	timeout  time.Duration
}

// NewResolver builds a resolver. A positive timeout bounds each lookup.
func NewResolver(accounts repository.AccountRepository, timeout time.Duration) *Resolver {
	return &Resolver{accounts: accounts, timeout: timeout}
}

// Resolve performs exactly one account lookup and checks existence, then status.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (*domain.Account, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	account, err := r.accounts.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	// anything other than active is treated as deactivated
	if !account.Active() {
		return nil, ErrAccountDeactivated
	}
	return account, nil
}
