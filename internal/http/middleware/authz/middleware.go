package authz

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/core/model"
	httpCtx "github.com/InterNutter/instants/internal/http/context"
	"github.com/pkg/errors"
)

type AssertFunc func(ctx context.Context, user model.User) (bool, error)

// IsAuthorized reports whether the user is the administrator. Emails are
// compared exactly, case included.
func IsAuthorized(user model.User, adminEmail string) bool {
	if user == nil || adminEmail == "" {
		return false
	}

	return user.Email() == adminEmail
}

func IsAuthenticated(ctx context.Context, user model.User) (bool, error) {
	return user != nil, nil
}

func IsAdmin(adminEmail string) AssertFunc {
	return func(ctx context.Context, user model.User) (bool, error) {
		return IsAuthorized(user, adminEmail), nil
	}
}

func Assert(ctx context.Context, user model.User, funcs ...AssertFunc) (bool, error) {
	for _, fn := range funcs {
		allowed, err := fn(ctx, user)
		if err != nil {
			return false, errors.WithStack(err)
		}

		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

// Middleware evaluates the assertions against the user of the request context
// on every request, before the wrapped handler runs.
func Middleware(forbidden http.Handler, funcs ...AssertFunc) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user := httpCtx.User(ctx)

			allowed, err := Assert(ctx, user, funcs...)
			if err != nil {
				slog.ErrorContext(ctx, "could not assert user authorizations", slog.Any("error", errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !allowed {
				if forbidden == nil {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				} else {
					forbidden.ServeHTTP(w, r)
				}
				return
			}

			h.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
