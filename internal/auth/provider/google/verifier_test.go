package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.URL.Query().Get("id_token"))
		w.Write([]byte(`{
			"sub": "sub-1",
			"email": "alice@example.com",
			"email_verified": "true",
			"name": "Alice",
			"aud": "client-1"
		}`))
	}))
	defer srv.Close()

	v := NewVerifierForTest(srv.URL, srv.URL)
	identity, err := v.VerifyIDToken(context.Background(), "token-123")
	require.NoError(t, err)

	assert.Equal(t, ProviderName, identity.Provider)
	assert.Equal(t, "sub-1", identity.ProviderUserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "Alice", identity.Name)
	assert.Equal(t, "client-1", identity.Audience)
}

func TestFetchProfileSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"sub": "sub-1",
			"email": "alice@example.com",
			"email_verified": true,
			"name": "Alice"
		}`))
	}))
	defer srv.Close()

	v := NewVerifierForTest(srv.URL, srv.URL)
	identity, err := v.FetchProfile(context.Background(), "access-123")
	require.NoError(t, err)
	assert.True(t, identity.EmailVerified)
}

func TestVerifyIDTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewVerifierForTest(srv.URL, srv.URL)
	_, err := v.VerifyIDToken(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrTokenRejected)
}

func TestLooseBoolForms(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`"true"`:  true,
		`"TRUE"`:  true,
		`"1"`:     true,
		`"false"`: false,
		`"0"`:     false,
		`null`:    false,
	}
	for raw, want := range cases {
		var b looseBool
		require.NoError(t, b.UnmarshalJSON([]byte(raw)), raw)
		assert.Equal(t, want, bool(b), raw)
	}
}
