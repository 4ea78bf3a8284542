package oidc

import (
	"context"
	"net/http"
	"time"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/crypto"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

type Options struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       []string
	HTTPClient   *http.Client
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Scopes:     []string{oidc.ScopeOpenID, "email", "profile"},
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithIssuer(issuer string) OptionFunc {
	return func(opts *Options) {
		opts.Issuer = issuer
	}
}

func WithClient(clientID, clientSecret string) OptionFunc {
	return func(opts *Options) {
		opts.ClientID = clientID
		opts.ClientSecret = clientSecret
	}
}

func WithCallbackURL(callbackURL string) OptionFunc {
	return func(opts *Options) {
		opts.CallbackURL = callbackURL
	}
}

func WithScopes(scopes ...string) OptionFunc {
	return func(opts *Options) {
		opts.Scopes = scopes
	}
}

func WithHTTPClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// Client talks to an OpenID Connect provider discovered once at creation.
type Client struct {
	provider   *oidc.Provider
	config     *oauth2.Config
	httpClient *http.Client
}

// NewClient performs the provider discovery. It fails when the discovery
// document cannot be fetched or does not match the configured issuer.
func NewClient(ctx context.Context, funcs ...OptionFunc) (*Client, error) {
	opts := NewOptions(funcs...)

	if opts.Issuer == "" {
		return nil, errors.New("missing issuer")
	}

	if opts.ClientID == "" {
		return nil, errors.New("missing client id")
	}

	if opts.CallbackURL == "" {
		return nil, errors.New("missing callback url")
	}

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, opts.HTTPClient), opts.Issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "could not discover provider '%s'", opts.Issuer)
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  opts.CallbackURL,
		Scopes:       opts.Scopes,
	}

	return &Client{
		provider:   provider,
		config:     config,
		httpClient: opts.HTTPClient,
	}, nil
}

// AuthCodeURL returns the authorization endpoint URL carrying the given state
// and S256 code challenge.
func (c *Client) AuthCodeURL(state string, challenge string) string {
	return c.config.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge_method", crypto.ChallengeMethodS256),
		oauth2.SetAuthURLParam("code_challenge", challenge),
	)
}

// Exchange trades the authorization code for tokens, presenting the verifier.
func (c *Client) Exchange(ctx context.Context, code string, verifier string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(c.clientContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return token, nil
}

// UserInfo fetches the claims of the token owner.
func (c *Client) UserInfo(ctx context.Context, token *oauth2.Token) (model.User, error) {
	info, err := c.provider.UserInfo(c.clientContext(ctx), oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims := map[string]any{}
	if err := info.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "could not decode userinfo claims")
	}

	return model.NewUser(info.Subject, info.Email, getDisplayName(info, claims), claims), nil
}

func (c *Client) clientContext(ctx context.Context) context.Context {
	return oidc.ClientContext(ctx, c.httpClient)
}

func getDisplayName(info *oidc.UserInfo, claims map[string]any) string {
	for _, key := range []string{"preferred_username", "name", "nickname"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}

	if info.Email != "" {
		return info.Email
	}

	return info.Subject
}
