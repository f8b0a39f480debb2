package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation errors
var (
	ErrMalformed        = errors.New("token malformed")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrInvalidToken     = errors.New("invalid token")
)

const minSecretLen = 32

// Claims is the decoded payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Service issues and validates HS256-signed session tokens. It is
// stateless; expiry is the only termination mechanism.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a token service. Secrets shorter than 32 bytes are a fatal
// configuration error for HS256.
func New(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf(
			"jwt secret must be at least %d bytes for HS256", minSecretLen,
		)
	}
	return &Service{secret: secret, ttl: ttl}, nil
}

// Issue signs a token for the given subject with issued-at = now and
// expiry = now + ttl.
func (s *Service) Issue(subject, username string, roles []string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: username,
		Roles:    roles,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Validate verifies the token's structure, signature and expiry against
// the given time and returns the decoded claims.
func (s *Service) Validate(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
