package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by lookups that match no account.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate is returned by Save when the store's uniqueness
	// constraint on email or username rejects the write. The store is
	// the sole arbiter of uniqueness; pre-checks in callers are racy
	// optimizations only.
	ErrDuplicate = errors.New("account already exists")
)

// Store persists accounts. Save inserts the account, assigns its ID and
// enforces email/username uniqueness atomically.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, a *Account) (*Account, error)
}
