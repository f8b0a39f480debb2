package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nagamytreya123/PaduchuAndham/internal/db"

	"github.com/lib/pq"
)

// pq error code for unique_violation.
const uniqueViolation = "23505"

// PostgresStore is the canonical Store backed by Postgres. Uniqueness of
// email and username is enforced by the LOWER() unique indexes, so a
// concurrent duplicate insert fails here rather than overwriting.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `id, username, name, email, password_hash, roles, provider, created_at, updated_at`

func (s *PostgresStore) scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		pq.Array(&a.Roles),
		&a.Provider,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return s.scanAccount(row)
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE LOWER(username) = LOWER($1)
	`, username)
	return s.scanAccount(row)
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1)
		)
	`, email).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts WHERE LOWER(username) = LOWER($1)
		)
	`, username).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Save(ctx context.Context, a *Account) (*Account, error) {
	saved := *a
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (username, name, email, password_hash, roles, provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		a.Username,
		a.Name,
		a.Email,
		a.PasswordHash,
		pq.Array(a.Roles),
		a.Provider,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	return &saved, nil
}
