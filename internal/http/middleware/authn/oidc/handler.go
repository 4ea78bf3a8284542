package oidc

import (
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/authn"
	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/http/handler/common"
	authnMiddleware "github.com/InterNutter/instants/internal/http/middleware/authn"
	"github.com/InterNutter/instants/internal/metrics"
	"github.com/InterNutter/instants/internal/session"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

const (
	stepInitiate = "initiate"
	stepCallback = "callback"
)

type Handler struct {
	mux         *http.ServeMux
	coordinator *authn.Coordinator
	sessions    *session.Store
}

// ServeHTTP implements [http.Handler].
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(coordinator *authn.Coordinator, sessions *session.Store) *Handler {
	h := &Handler{
		mux:         http.NewServeMux(),
		coordinator: coordinator,
		sessions:    sessions,
	}

	h.mux.HandleFunc("GET /sign-in", h.handleSignIn)
	h.mux.HandleFunc("GET /callback", h.handleCallback)
	h.mux.HandleFunc("GET /sign-out", h.handleSignOut)
	h.mux.HandleFunc("GET /account", h.handleAccount)

	return h
}

// Authenticate implements [authnMiddleware.Authenticator].
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) (model.User, error) {
	sess, err := h.sessions.Load(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user, err := sess.Identity()
	if err != nil {
		slog.WarnContext(r.Context(), "ignoring unreadable session identity", slogx.Error(err))
		return nil, nil
	}

	return user, nil
}

var (
	_ http.Handler                  = &Handler{}
	_ authnMiddleware.Authenticator = &Handler{}
)

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Load(r)
	if err != nil {
		metrics.Logins.WithLabelValues(stepInitiate, metrics.StatusFailed).Inc()
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	authURL, err := h.coordinator.Initiate(ctx, sess, r.Referer())
	if err != nil {
		metrics.Logins.WithLabelValues(stepInitiate, metrics.StatusFailed).Inc()
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	if err := sess.Save(w); err != nil {
		metrics.Logins.WithLabelValues(stepInitiate, metrics.StatusFailed).Inc()
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	metrics.Logins.WithLabelValues(stepInitiate, metrics.StatusSuccess).Inc()

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.sessions.Load(r)
	if err != nil {
		metrics.Logins.WithLabelValues(stepCallback, metrics.StatusFailed).Inc()
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	redirect, callbackErr := h.coordinator.HandleCallback(ctx, sess, r.URL.Query())

	// The session is saved whatever the outcome so that the consumed verifier
	// is persisted as cleared
	if err := sess.Save(w); err != nil {
		metrics.Logins.WithLabelValues(stepCallback, metrics.StatusFailed).Inc()
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	if callbackErr != nil {
		metrics.Logins.WithLabelValues(stepCallback, metrics.StatusFailed).Inc()
		slog.ErrorContext(ctx, "could not complete authentication handshake", slogx.Error(callbackErr))
		common.WriteJSON(w, r, http.StatusInternalServerError, common.ErrorResponse{Error: handshakeMessage(callbackErr)})
		return
	}

	metrics.Logins.WithLabelValues(stepCallback, metrics.StatusSuccess).Inc()

	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Load(r)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	h.coordinator.SignOut(sess)

	if err := sess.Save(w); err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	common.WriteJSON(w, r, http.StatusOK, struct{}{})
}

func (h *Handler) handleAccount(w http.ResponseWriter, r *http.Request) {
	user, err := h.Authenticate(w, r)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	res := map[string]any{}

	if user != nil {
		for key, value := range user.Claims() {
			res[key] = value
		}

		res["sub"] = user.Subject()
		res["email"] = user.Email()
		res["name"] = user.DisplayName()
	}

	res["signedIn"] = user != nil

	common.WriteJSON(w, r, http.StatusOK, res)
}

// handshakeMessage returns the opaque message exposed for a failed callback.
func handshakeMessage(err error) string {
	kinds := []error{
		authn.ErrMissingProofState,
		authn.ErrStateMismatch,
		authn.ErrProviderUnavailable,
		authn.ErrTokenExchangeFailed,
		authn.ErrUserInfoFetchFailed,
	}

	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}

	return "authentication failed"
}
