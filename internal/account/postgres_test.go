package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nagamytreya123/PaduchuAndham/internal/db"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgresStore(&db.DB{DB: sqlDB}), mock
}

func accountRows(a Account) *sqlmock.Rows {
	roles := "{" + strings.Join(a.Roles, ",") + "}"
	return sqlmock.NewRows([]string{
		"id", "username", "name", "email", "password_hash",
		"roles", "provider", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.Username, a.Name, a.Email, a.PasswordHash,
		roles, a.Provider, a.CreatedAt, a.UpdatedAt,
	)
}

func TestPostgresFindByEmail(t *testing.T) {
	store, mock := newMockStore(t)

	want := Account{
		ID:       "a6f2f9d0-0000-0000-0000-000000000001",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{DefaultRole},
		Provider: ProviderLocal,
	}

	mock.ExpectQuery(`SELECT (.+)\s+FROM accounts\s+WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("alice@example.com").
		WillReturnRows(accountRows(want))

	got, err := store.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, []string{DefaultRole}, got.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByUsernameNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+)\s+FROM accounts\s+WHERE LOWER\(username\) = LOWER\(\$1\)`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "name", "email", "password_hash",
			"roles", "provider", "created_at", "updated_at",
		}))

	_, err := store.FindByUsername(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExistsByEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("alice", "Alice", "alice@example.com", "hash",
			pq.Array([]string{DefaultRole}), ProviderLocal).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("a6f2f9d0-0000-0000-0000-000000000001", now, now))

	saved, err := store.Save(context.Background(), &Account{
		Username:     "alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Roles:        []string{DefaultRole},
		Provider:     ProviderLocal,
	})
	require.NoError(t, err)
	assert.Equal(t, "a6f2f9d0-0000-0000-0000-000000000001", saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveDuplicate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := store.Save(context.Background(), &Account{
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{DefaultRole},
		Provider: ProviderLocal,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
