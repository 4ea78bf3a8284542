package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/InterNutter/instants/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	server *httptest.Server

	mu         sync.Mutex
	challenges map[string]string
}

func newFakeProvider(t *testing.T) *fakeProvider {
	p := &fakeProvider{
		challenges: map[string]string{},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"issuer":                 p.server.URL,
			"authorization_endpoint": p.server.URL + "/authorize",
			"token_endpoint":         p.server.URL + "/token",
			"userinfo_endpoint":      p.server.URL + "/userinfo",
			"jwks_uri":               p.server.URL + "/jwks",
		})
	})

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		challenge, exists := p.challenges[r.PostForm.Get("code")]
		delete(p.challenges, r.PostForm.Get("code"))
		p.mu.Unlock()

		if !exists || crypto.Challenge(r.PostForm.Get("code_verifier")) != challenge {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]any{"error": "invalid_grant"})
			return
		}

		writeJSON(w, map[string]any{
			"access_token": "access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		writeJSON(w, map[string]any{
			"sub":                "user-1",
			"email":              "admin@example.com",
			"email_verified":     true,
			"preferred_username": "admin",
		})
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)

	return p
}

// authorize simulates the user approving the authorization request and
// returns the issued code.
func (p *fakeProvider) authorize(t *testing.T, authURL string) string {
	u, err := url.Parse(authURL)
	require.NoError(t, err)

	query := u.Query()
	require.Equal(t, "S256", query.Get("code_challenge_method"))

	code := "code-" + query.Get("state")

	p.mu.Lock()
	p.challenges[code] = query.Get("code_challenge")
	p.mu.Unlock()

	return code
}

func writeJSON(w http.ResponseWriter, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, provider *fakeProvider) *Client {
	client, err := NewClient(context.Background(),
		WithIssuer(provider.server.URL),
		WithClient("instants", "secret"),
		WithCallbackURL("http://localhost:3000/callback"),
		WithHTTPClient(provider.server.Client()),
	)
	require.NoError(t, err)

	return client
}

func TestClientAuthCodeURL(t *testing.T) {
	provider := newFakeProvider(t)
	client := newTestClient(t, provider)

	verifier := crypto.NewVerifier()
	authURL := client.AuthCodeURL("state-1", crypto.Challenge(verifier))

	u, err := url.Parse(authURL)
	require.NoError(t, err)

	assert.Equal(t, provider.server.URL+"/authorize", u.Scheme+"://"+u.Host+u.Path)

	query := u.Query()
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "instants", query.Get("client_id"))
	assert.Equal(t, "http://localhost:3000/callback", query.Get("redirect_uri"))
	assert.Equal(t, "openid email profile", query.Get("scope"))
	assert.Equal(t, "state-1", query.Get("state"))
	assert.Equal(t, crypto.Challenge(verifier), query.Get("code_challenge"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.Empty(t, query.Get("code_verifier"))
}

func TestClientExchangeAndUserInfo(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider(t)
	client := newTestClient(t, provider)

	verifier := crypto.NewVerifier()
	code := provider.authorize(t, client.AuthCodeURL("state-1", crypto.Challenge(verifier)))

	token, err := client.Exchange(ctx, code, verifier)
	require.NoError(t, err)
	assert.Equal(t, "access-token", token.AccessToken)

	user, err := client.UserInfo(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.Subject())
	assert.Equal(t, "admin@example.com", user.Email())
	assert.Equal(t, "admin", user.DisplayName())
	assert.Equal(t, true, user.Claims()["email_verified"])
}

func TestClientExchangeWithWrongVerifier(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider(t)
	client := newTestClient(t, provider)

	code := provider.authorize(t, client.AuthCodeURL("state-1", crypto.Challenge(crypto.NewVerifier())))

	_, err := client.Exchange(ctx, code, crypto.NewVerifier())
	assert.Error(t, err)
}

func TestNewClientDiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewClient(context.Background(),
		WithIssuer(server.URL),
		WithClient("instants", "secret"),
		WithCallbackURL("http://localhost:3000/callback"),
		WithHTTPClient(server.Client()),
	)
	assert.Error(t, err)
}
