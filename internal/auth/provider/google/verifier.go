package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nagamytreya123/PaduchuAndham/internal/auth/provider"
)

const (
	defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	defaultUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// ErrTokenRejected is returned when Google answers a verification call
// with a non-success status.
var ErrTokenRejected = errors.New("google rejected the token")

// Verifier verifies Google tokens posted directly by a client (One-Tap
// id tokens and popup-flow access tokens) without a redirect dance.
type Verifier struct {
	client       *http.Client
	tokenInfoURL string
	userInfoURL  string
}

// NewVerifier builds a Verifier with a bounded request timeout. The
// timeout is the only deadline beyond the request's own context.
func NewVerifier(timeout time.Duration) *Verifier {
	return &Verifier{
		client:       &http.Client{Timeout: timeout},
		tokenInfoURL: defaultTokenInfoURL,
		userInfoURL:  defaultUserInfoURL,
	}
}

// NewVerifierForTest points the verifier at a stand-in Google.
func NewVerifierForTest(tokenInfoURL, userInfoURL string) *Verifier {
	return &Verifier{
		client:       &http.Client{Timeout: 5 * time.Second},
		tokenInfoURL: tokenInfoURL,
		userInfoURL:  userInfoURL,
	}
}

// payload is the response shape shared by Google's tokeninfo and
// userinfo endpoints. tokeninfo reports email_verified as the strings
// "true"/"false", userinfo as a bool; looseBool accepts both.
type payload struct {
	Subject       string    `json:"sub"`
	Email         string    `json:"email"`
	EmailVerified looseBool `json:"email_verified"`
	Name          string    `json:"name"`
	Audience      string    `json:"aud"`
}

type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		*b = looseBool(val)
	case string:
		*b = looseBool(strings.EqualFold(val, "true") || val == "1")
	default:
		*b = false
	}
	return nil
}

// VerifyIDToken validates an id token against Google's tokeninfo
// endpoint and returns the asserted identity.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*provider.Identity, error) {
	u := v.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return v.fetch(req)
}

// FetchProfile validates an access token by fetching the userinfo
// endpoint with it.
func (v *Verifier) FetchProfile(ctx context.Context, accessToken string) (*provider.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return v.fetch(req)
}

func (v *Verifier) fetch(req *http.Request) (*provider.Identity, error) {
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google verification call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrTokenRejected, resp.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("google profile decode failed: %w", err)
	}

	return &provider.Identity{
		Provider:       ProviderName,
		ProviderUserID: p.Subject,
		Email:          p.Email,
		EmailVerified:  bool(p.EmailVerified),
		Name:           p.Name,
		Audience:       p.Audience,
	}, nil
}
