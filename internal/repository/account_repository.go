package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

// ErrNotFound is returned when no account matches the requested id.
var ErrNotFound = errors.New("account not found")

// AccountRepository is the read-only account store lookup used by the gateway.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// RowQuerier is the subset of pgxpool.Pool the repository needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type accountRepository struct {
	db RowQuerier
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db RowQuerier) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	// ids are uuid columns; anything else cannot match and would only produce a cast error
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
        SELECT id, full_name, email, role, status
        FROM accounts WHERE id=$1`

	var (
		account domain.Account
		role    string
		status  string
	)
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.FullName,
		&account.Email,
		&role,
		&status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query account %s: %w", id, err)
	}

	account.Role, _ = domain.ParseRole(role)
	account.Status = domain.AccountStatus(strings.ToLower(strings.TrimSpace(status)))
	return &account, nil
}
