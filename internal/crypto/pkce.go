package crypto

import (
	"golang.org/x/oauth2"
)

const ChallengeMethodS256 = "S256"

// NewVerifier returns a fresh PKCE code verifier (43 URL-safe characters).
func NewVerifier() string {
	return oauth2.GenerateVerifier()
}

// Challenge derives the S256 code challenge of the given verifier.
func Challenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
