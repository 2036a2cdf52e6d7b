package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
	"github.com/sharath2004-tech/odoo-sub001/internal/repository"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func activeAccount(role domain.Role) *domain.Account {
	return &domain.Account{
		ID:       "5d1c5b2e-1b43-4d3f-9d3a-0f4f0c6c8a10",
		FullName: "Katherine Johnson",
		Email:    "katherine@example.com",
		Role:     role,
		Status:   domain.AccountStatusActive,
	}
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("active account returned unchanged", func(t *testing.T) {
		repo := new(MockAccountRepository)
		account := activeAccount(domain.RoleHR)
		repo.On("GetByID", mock.Anything, account.ID).Return(account, nil).Once()

		got, err := NewResolver(repo, time.Second).Resolve(ctx, account.ID)
		require.NoError(t, err)
		assert.Same(t, account, got)
		repo.AssertExpectations(t)
	})

	t.Run("missing account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("GetByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound).Once()

		_, err := NewResolver(repo, 0).Resolve(ctx, "gone")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("nil account without error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("GetByID", mock.Anything, "gone").Return(nil, nil).Once()

		_, err := NewResolver(repo, 0).Resolve(ctx, "gone")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		account := activeAccount(domain.RoleAdmin)
		account.Status = domain.AccountStatusInactive
		repo.On("GetByID", mock.Anything, account.ID).Return(account, nil).Once()

		_, err := NewResolver(repo, 0).Resolve(ctx, account.ID)
		assert.ErrorIs(t, err, ErrAccountDeactivated)
		assert.NotErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("store failure is not not-found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cause := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
		repo.On("GetByID", mock.Anything, "acc").Return(nil, cause).Once()

		_, err := NewResolver(repo, 0).Resolve(ctx, "acc")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("lookup bounded by timeout", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("GetByID", mock.Anything, "slow").
			Run(func(args mock.Arguments) {
				lookupCtx := args.Get(0).(context.Context)
				_, hasDeadline := lookupCtx.Deadline()
				assert.True(t, hasDeadline)
				<-lookupCtx.Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()

		start := time.Now()
		_, err := NewResolver(repo, 20*time.Millisecond).Resolve(ctx, "slow")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("cancelled request abandons lookup", func(t *testing.T) {
		repo := new(MockAccountRepository)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		repo.On("GetByID", mock.Anything, "acc").
			Return(nil, context.Canceled).Once()

		_, err := NewResolver(repo, time.Second).Resolve(cancelled, "acc")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
