package session

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

type Store struct {
	backend sessions.Store
	name    string
}

func NewStore(backend sessions.Store, name string) *Store {
	return &Store{
		backend: backend,
		name:    name,
	}
}

// Load returns the session bound to the request, creating a new one on first
// visit or when the stored session cannot be decoded or loaded.
func (s *Store) Load(r *http.Request) (*Session, error) {
	sess, err := s.backend.Get(r, s.name)
	if err != nil {
		if sess == nil {
			return nil, errors.WithStack(err)
		}

		slog.WarnContext(r.Context(), "could not restore session, starting a new one", slogx.Error(err))
	}

	return &Session{
		raw:     sess,
		request: r,
	}, nil
}
