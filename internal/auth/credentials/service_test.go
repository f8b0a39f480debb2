package credentials

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nagamytreya123/PaduchuAndham/internal/account"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/token"
)

func newTestService(t *testing.T) (*Service, *account.MemStore, *token.Service) {
	t.Helper()

	tokens, err := token.New([]byte(strings.Repeat("s", 32)), time.Hour)
	require.NoError(t, err)

	store := account.NewMemStore()
	return NewService(store, tokens), store, tokens
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	acc, err := svc.Register(context.Background(), "Alice", "alice@EXAMPLE.com ", "pw123456")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", acc.Email)
	assert.Equal(t, []string{account.DefaultRole}, acc.Roles)
	assert.Equal(t, account.ProviderLocal, acc.Provider)
	assert.NotEmpty(t, acc.ID)
	assert.NotEqual(t, "pw123456", acc.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct{ name, email, password string }{
		{"", "alice@example.com", "pw123456"},
		{"Alice", "", "pw123456"},
		{"Alice", "alice@example.com", ""},
		{"   ", "alice@example.com", "pw123456"},
	}
	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice2", "Alice@example.com", "pw123456")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	acc, err := svc.Register(ctx, "Alice", "alice@EXAMPLE.com ", "pw123456")
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "alice@example.com", "pw123456")
	require.NoError(t, err)

	claims, err := tokens.Validate(tok, time.Now())
	require.NoError(t, err)
	assert.Equal(t, acc.ID, claims.Subject)
	assert.Equal(t, "Alice", claims.Username)
	assert.Equal(t, []string{account.DefaultRole}, claims.Roles)
}

func TestLoginByUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "Alice", "pw123456")
	assert.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "pw123456")
	require.NoError(t, err)

	// wrong password and unknown account return the same error
	_, errWrong := svc.Login(ctx, "alice@example.com", "wrong")
	_, errMissing := svc.Login(ctx, "nobody@example.com", "pw123456")

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errMissing, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errMissing.Error())
}
