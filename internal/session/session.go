package session

import (
	"encoding/json"
	"net/http"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const (
	keyVerifier = "verifier"
	keyState    = "state"
	keyRedirect = "redirect"
	keyIdentity = "identity"
)

// Session exposes the fields of a browser session used by the login flow.
type Session struct {
	raw     *sessions.Session
	request *http.Request
}

func (s *Session) Verifier() (string, bool) {
	return s.getString(keyVerifier)
}

func (s *Session) SetVerifier(verifier string) {
	s.raw.Values[keyVerifier] = verifier
}

func (s *Session) State() (string, bool) {
	return s.getString(keyState)
}

func (s *Session) SetState(state string) {
	s.raw.Values[keyState] = state
}

func (s *Session) Redirect() (string, bool) {
	return s.getString(keyRedirect)
}

func (s *Session) SetRedirect(redirect string) {
	s.raw.Values[keyRedirect] = redirect
}

// ClearProof removes the verifier, the state and the redirect target.
func (s *Session) ClearProof() {
	delete(s.raw.Values, keyVerifier)
	delete(s.raw.Values, keyState)
	delete(s.raw.Values, keyRedirect)
}

type storedIdentity struct {
	Subject     string         `json:"sub"`
	Email       string         `json:"email"`
	DisplayName string         `json:"name"`
	Claims      map[string]any `json:"claims"`
}

// Identity returns the authenticated user of the session or nil.
func (s *Session) Identity() (model.User, error) {
	raw, exists := s.getString(keyIdentity)
	if !exists {
		return nil, nil
	}

	var stored storedIdentity
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, errors.Wrap(err, "could not decode session identity")
	}

	return model.NewUser(stored.Subject, stored.Email, stored.DisplayName, stored.Claims), nil
}

func (s *Session) SetIdentity(user model.User) error {
	stored := storedIdentity{
		Subject:     user.Subject(),
		Email:       user.Email(),
		DisplayName: user.DisplayName(),
		Claims:      user.Claims(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return errors.WithStack(err)
	}

	s.raw.Values[keyIdentity] = string(data)

	return nil
}

func (s *Session) ClearIdentity() {
	delete(s.raw.Values, keyIdentity)
}

func (s *Session) Save(w http.ResponseWriter) error {
	if err := s.raw.Save(s.request, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Session) getString(key string) (string, bool) {
	raw, exists := s.raw.Values[key]
	if !exists {
		return "", false
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}
