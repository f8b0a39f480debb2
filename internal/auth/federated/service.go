package federated

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nagamytreya123/PaduchuAndham/internal/account"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/credentials"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/provider"
	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/token"
	"github.com/Nagamytreya123/PaduchuAndham/internal/logger"
)

var (
	ErrValidation           = errors.New("idToken or accessToken required")
	ErrInvalidProviderToken = errors.New("invalid provider token")
	ErrAudienceMismatch     = errors.New("invalid token audience")
	ErrProfileIncomplete    = errors.New("email missing in provider profile")
	ErrEmailUnverified      = errors.New("provider email not verified")
	ErrUsernameExhausted    = errors.New("could not derive a free username")
	ErrSignInFailed         = errors.New("sign-in failed")
)

// maxUsernameAttempts bounds the collision-retry loop when deriving a
// username from the email local part.
const maxUsernameAttempts = 10

// Client verifies provider tokens posted by the frontend. Exactly one
// of the two calls is used per sign-in, depending on the input shape.
type Client interface {
	VerifyIDToken(ctx context.Context, idToken string) (*provider.Identity, error)
	FetchProfile(ctx context.Context, accessToken string) (*provider.Identity, error)
}

// TokenInput is the dual-shape federated sign-in payload: an identity
// assertion (IDToken) or an access token for the profile endpoint.
// IDToken wins when both are set.
type TokenInput struct {
	IDToken     string
	AccessToken string
}

// Policy holds the configurable decision points of federated sign-in.
type Policy struct {
	// Audience, when set, must match the verified token's audience.
	Audience string

	// RequireVerifiedEmail rejects profiles whose email the provider
	// has not verified. Permissive unless explicitly enabled.
	RequireVerifiedEmail bool
}

// Service reconciles a verified provider profile to a local account and
// issues a session token for it.
type Service struct {
	store  account.Store
	tokens *token.Service
	client Client
	policy Policy
}

func NewService(store account.Store, tokens *token.Service, client Client, policy Policy) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		client: client,
		policy: policy,
	}
}

// SignIn runs one sign-in attempt: verify the provider token, extract
// the profile, resolve the account, issue a token.
func (s *Service) SignIn(ctx context.Context, input TokenInput) (string, error) {
	var (
		identity *provider.Identity
		err      error
	)

	switch {
	case strings.TrimSpace(input.IDToken) != "":
		identity, err = s.client.VerifyIDToken(ctx, input.IDToken)
	case strings.TrimSpace(input.AccessToken) != "":
		identity, err = s.client.FetchProfile(ctx, input.AccessToken)
	default:
		return "", ErrValidation
	}

	if err != nil {
		logger.Warn("provider token verification failed", map[string]any{
			"error": err.Error(),
		})
		return "", ErrInvalidProviderToken
	}

	return s.SignInIdentity(ctx, identity)
}

// SignInIdentity resolves an already verified identity. The redirect
// flow's callback enters here after its own code exchange.
func (s *Service) SignInIdentity(ctx context.Context, identity *provider.Identity) (string, error) {
	// userinfo profiles carry no audience; only id tokens do, so the
	// check applies only when the provider reported one
	if s.policy.Audience != "" && identity.Audience != "" && identity.Audience != s.policy.Audience {
		return "", ErrAudienceMismatch
	}

	if strings.TrimSpace(identity.Email) == "" {
		return "", ErrProfileIncomplete
	}

	if s.policy.RequireVerifiedEmail && !identity.EmailVerified {
		return "", ErrEmailUnverified
	}

	acc, err := s.resolveAccount(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrUsernameExhausted) {
			return "", err
		}
		logger.Error("federated account resolution failed", map[string]any{
			"provider": identity.Provider,
			"error":    err.Error(),
		})
		return "", ErrSignInFailed
	}

	tok, err := s.tokens.Issue(acc.ID, acc.Username, acc.Roles, time.Now())
	if err != nil {
		logger.Error("token issuance failed", map[string]any{
			"account_id": acc.ID,
			"error":      err.Error(),
		})
		return "", ErrSignInFailed
	}

	return tok, nil
}

// resolveAccount reuses the account with the profile's email or creates
// one. No role or provider-metadata merge happens on reuse.
func (s *Service) resolveAccount(ctx context.Context, identity *provider.Identity) (*account.Account, error) {
	email := account.NormalizeEmail(identity.Email)

	acc, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("lookup by email: %w", err)
	}

	username, err := s.freeUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	// Unusable random password: the account has no local credential
	// until a password-set flow runs.
	randomHash, err := credentials.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("hash random password: %w", err)
	}

	created, err := s.store.Save(ctx, &account.Account{
		Username:     username,
		Name:         identity.Name,
		Email:        email,
		PasswordHash: randomHash,
		Roles:        []string{account.DefaultRole},
		Provider:     identity.Provider,
	})
	if errors.Is(err, account.ErrDuplicate) {
		// a concurrent first sign-in won the insert; use its account
		return s.store.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	logger.Info("federated account created", map[string]any{
		"account_id": created.ID,
		"provider":   identity.Provider,
	})

	return created, nil
}

// freeUsername derives a username from the email local part, retrying
// with a random numeric suffix on collision, at most maxUsernameAttempts
// times.
func (s *Service) freeUsername(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	candidate := base

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		taken, err := s.store.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("username check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, rand.IntN(10000))
	}

	return "", ErrUsernameExhausted
}
