package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nagamytreya123/PaduchuAndham/internal/account"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/token"
	"github.com/Nagamytreya123/PaduchuAndham/internal/logger"
)

var (
	ErrValidation         = errors.New("name, email and password are required")
	ErrAlreadyExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
)

// dummyHash is a valid bcrypt hash that no password matches. Login runs
// a compare against it when the account lookup misses, so a missing
// account and a wrong password take the same time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Service struct {
	store  account.Store
	tokens *token.Service
}

func NewService(store account.Store, tokens *token.Service) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates a local account. The existence pre-checks are racy
// optimizations; the store's uniqueness constraint is the real arbiter,
// so a concurrent duplicate surfaces from Save as ErrAlreadyExists too.
func (s *Service) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
) (*account.Account, error) {

	name = strings.TrimSpace(name)
	email = account.NormalizeEmail(email)

	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrValidation
	}

	if taken, err := s.store.ExistsByUsername(ctx, name); err != nil {
		return nil, fmt.Errorf("username check: %w", err)
	} else if taken {
		return nil, ErrAlreadyExists
	}

	if taken, err := s.store.ExistsByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("email check: %w", err)
	} else if taken {
		return nil, ErrAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.Save(ctx, &account.Account{
		Username:     name,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{account.DefaultRole},
		Provider:     account.ProviderLocal,
	})
	if errors.Is(err, account.ErrDuplicate) {
		// lost the race to a concurrent registration
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	logger.Info("account registered", map[string]any{
		"account_id": created.ID,
	})

	return created, nil
}

// Login authenticates by username or email and issues a session token.
// Missing account and wrong password are deliberately indistinguishable.
func (s *Service) Login(
	ctx context.Context,
	identifier string,
	password string,
) (string, error) {

	acc, err := s.store.FindByUsername(ctx, identifier)
	if errors.Is(err, account.ErrNotFound) {
		acc, err = s.store.FindByEmail(ctx, account.NormalizeEmail(identifier))
	}
	if errors.Is(err, account.ErrNotFound) {
		// burn a compare so the miss is not timing-observable
		_ = VerifyPassword(dummyHash, password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup account: %w", err)
	}

	if err := VerifyPassword(acc.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(acc.ID, acc.Username, acc.Roles, time.Now())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return tok, nil
}
