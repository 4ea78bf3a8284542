package authn

import (
	"context"
	"crypto/subtle"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/crypto"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

type IdentityProvider interface {
	AuthCodeURL(state string, challenge string) string
	Exchange(ctx context.Context, code string, verifier string) (*oauth2.Token, error)
	UserInfo(ctx context.Context, token *oauth2.Token) (model.User, error)
}

// Session holds the login state of a browser between the two legs of the
// handshake.
type Session interface {
	Verifier() (string, bool)
	SetVerifier(verifier string)
	State() (string, bool)
	SetState(state string)
	Redirect() (string, bool)
	SetRedirect(redirect string)
	ClearProof()
	SetIdentity(user model.User) error
	ClearIdentity()
}

type Options struct {
	Timeout         time.Duration
	DefaultRedirect string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Timeout:         10 * time.Second,
		DefaultRedirect: "/",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

func WithDefaultRedirect(redirect string) OptionFunc {
	return func(opts *Options) {
		opts.DefaultRedirect = redirect
	}
}

type Coordinator struct {
	provider        IdentityProvider
	timeout         time.Duration
	defaultRedirect string
	// redirectHost is the only host absolute redirects may target. Empty
	// when the default redirect is relative.
	redirectHost string
}

func NewCoordinator(provider IdentityProvider, funcs ...OptionFunc) *Coordinator {
	opts := NewOptions(funcs...)

	return &Coordinator{
		provider:        provider,
		timeout:         opts.Timeout,
		defaultRedirect: opts.DefaultRedirect,
		redirectHost:    getRedirectHost(opts.DefaultRedirect),
	}
}

// Initiate binds a fresh verifier and state to the session and returns the
// provider authorization URL. A previous unfinished attempt is overwritten.
func (c *Coordinator) Initiate(ctx context.Context, sess Session, referer string) (string, error) {
	verifier := crypto.NewVerifier()

	state, err := crypto.GenerateSecureToken()
	if err != nil {
		return "", errors.Wrap(err, "could not generate state")
	}

	sess.SetVerifier(verifier)
	sess.SetState(state)
	sess.SetRedirect(sanitizeRedirect(referer, c.redirectHost))

	return c.provider.AuthCodeURL(state, crypto.Challenge(verifier)), nil
}

// HandleCallback completes the handshake. The verifier is consumed before any
// other check so that a callback can never be replayed on the same session.
func (c *Coordinator) HandleCallback(ctx context.Context, sess Session, query url.Values) (string, error) {
	verifier, exists := sess.Verifier()
	if !exists {
		return "", errors.WithStack(ErrMissingProofState)
	}

	expectedState, _ := sess.State()
	redirect, hasRedirect := sess.Redirect()

	sess.ClearProof()

	if providerErr := query.Get("error"); providerErr != "" {
		return "", errors.WithStack(&HandshakeError{
			Kind: ErrTokenExchangeFailed,
			Err:  errors.Errorf("provider returned error '%s': %s", providerErr, query.Get("error_description")),
		})
	}

	code := query.Get("code")
	if code == "" {
		return "", errors.WithStack(&HandshakeError{
			Kind: ErrTokenExchangeFailed,
			Err:  errors.New("missing authorization code"),
		})
	}

	if subtle.ConstantTimeCompare([]byte(expectedState), []byte(query.Get("state"))) != 1 {
		return "", errors.WithStack(ErrStateMismatch)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.provider.Exchange(ctx, code, verifier)
	if err != nil {
		return "", errors.WithStack(providerError(ctx, ErrTokenExchangeFailed, err))
	}

	user, err := c.provider.UserInfo(ctx, token)
	if err != nil {
		return "", errors.WithStack(providerError(ctx, ErrUserInfoFetchFailed, err))
	}

	if user == nil || user.Email() == "" {
		return "", errors.WithStack(&HandshakeError{
			Kind: ErrUserInfoFetchFailed,
			Err:  errors.New("missing email claim"),
		})
	}

	if err := sess.SetIdentity(user); err != nil {
		return "", errors.WithStack(err)
	}

	if !hasRedirect {
		return c.defaultRedirect, nil
	}

	return redirect, nil
}

// SignOut removes the identity from the session. Signing out an anonymous
// session is a no-op.
func (c *Coordinator) SignOut(sess Session) {
	sess.ClearIdentity()
}

func providerError(ctx context.Context, kind error, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &HandshakeError{Kind: ErrProviderUnavailable, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &HandshakeError{Kind: ErrProviderUnavailable, Err: err}
	}

	return &HandshakeError{Kind: kind, Err: err}
}

// sanitizeRedirect keeps relative paths, and absolute http(s) URLs on the
// given host.
func sanitizeRedirect(raw string, host string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return ""
		}

		if host == "" || !strings.EqualFold(u.Host, host) {
			return ""
		}

		return u.String()
	}

	if u.Host != "" || u.Path == "" || u.Path[0] != '/' {
		return ""
	}

	return u.String()
}

func getRedirectHost(defaultRedirect string) string {
	u, err := url.Parse(defaultRedirect)
	if err != nil || !u.IsAbs() {
		return ""
	}

	return u.Host
}
