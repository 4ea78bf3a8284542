package authn

import (
	"errors"
	"fmt"
)

var (
	ErrMissingProofState   = errors.New("missing proof state")
	ErrStateMismatch       = errors.New("state mismatch")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrUserInfoFetchFailed = errors.New("userinfo fetch failed")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// HandshakeError ties a failure of the identity provider to one of the
// handshake error kinds.
type HandshakeError struct {
	Kind error
	Err  error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *HandshakeError) Unwrap() error {
	return e.Err
}

func (e *HandshakeError) Is(target error) bool {
	return target == e.Kind
}
