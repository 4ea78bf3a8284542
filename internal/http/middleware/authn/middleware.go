package authn

import (
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/core/model"
	httpCtx "github.com/InterNutter/instants/internal/http/context"
	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (model.User, error)
}

// Middleware attaches the first user resolved by the authenticators to the
// request context. Anonymous requests are passed through untouched.
func Middleware(authenticators ...Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			for _, authenticator := range authenticators {
				user, err := authenticator.Authenticate(w, r)
				if err != nil {
					slog.ErrorContext(r.Context(), "could not authenticate user", slog.Any("error", errors.WithStack(err)))
					common.HandleError(w, r, err)
					return
				}

				if user == nil {
					continue
				}

				ctx := r.Context()
				ctx = httpCtx.SetUser(ctx, user)
				ctx = slogx.WithAttrs(ctx, slog.String("user", user.Email()))

				r = r.WithContext(ctx)

				break
			}

			next.ServeHTTP(w, r)
		}

		return fn
	}
}
