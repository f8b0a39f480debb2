package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreSaveAssignsID(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, &Account{
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{DefaultRole},
		Provider: ProviderLocal,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestMemStoreUniqueness(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.Save(ctx, &Account{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	// same email, different case
	_, err = store.Save(ctx, &Account{
		Username: "alice2", Email: "Alice@Example.com",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	// same username, different email
	_, err = store.Save(ctx, &Account{
		Username: "ALICE", Email: "other@example.com",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemStoreLookups(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, &Account{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	byEmail, err := store.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)

	byUsername, err := store.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byUsername.ID)

	_, err = store.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := store.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}
