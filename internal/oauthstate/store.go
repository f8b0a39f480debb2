// Package oauthstate persists the short-lived state of one redirect
// sign-in attempt between the authorization redirect and the callback.
// The POST token flow is stateless and does not use it.
package oauthstate

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Nagamytreya123/PaduchuAndham/internal/redis"
	"github.com/Nagamytreya123/PaduchuAndham/internal/utils"
)

// ErrNotFound is returned when the state is unknown or already used.
var ErrNotFound = errors.New("oauth state not found")

const ttl = 5 * time.Minute

// Attempt carries one redirect sign-in attempt's secrets. State is the
// redis key; the PKCE verifier never leaves the backend.
type Attempt struct {
	State        string `json:"state"`
	CodeVerifier string `json:"code_verifier"`
	Provider     string `json:"provider"`
}

// Challenge derives the S256 code challenge for the attempt's verifier.
func (a Attempt) Challenge() string {
	sum := sha256.Sum256([]byte(a.CodeVerifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Store is a one-shot attempt store: Consume deletes what it returns,
// so a state value cannot be replayed.
type Store interface {
	Create(ctx context.Context, providerName string) (Attempt, error)
	Consume(ctx context.Context, state string) (Attempt, error)
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauthstate:",
	}
}

func (r *RedisStore) key(state string) string {
	return r.prefix + state
}

func (r *RedisStore) Create(ctx context.Context, providerName string) (Attempt, error) {
	a := Attempt{
		State:        utils.RandomString(32),
		CodeVerifier: utils.RandomString(32),
		Provider:     providerName,
	}

	data, err := json.Marshal(a)
	if err != nil {
		return Attempt{}, fmt.Errorf("oauthstate: marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key(a.State), data, ttl).Err(); err != nil {
		return Attempt{}, fmt.Errorf("oauthstate: store: %w", err)
	}

	return a, nil
}

func (r *RedisStore) Consume(ctx context.Context, state string) (Attempt, error) {
	val, err := r.client.GetDel(ctx, r.key(state)).Result()
	if errors.Is(err, goredis.Nil) {
		return Attempt{}, ErrNotFound
	}
	if err != nil {
		return Attempt{}, err
	}

	var a Attempt
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		return Attempt{}, fmt.Errorf("oauthstate: unmarshal: %w", err)
	}

	return a, nil
}
