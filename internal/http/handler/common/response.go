package common

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/core/service"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
	}
}

// HandleError writes err as a JSON error body. Validation errors carry their
// message, other failures only expose a generic one and are logged.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var (
		httpErr       HTTPError
		userFacingErr UserFacingError
	)

	switch {
	case errors.As(err, &httpErr) && errors.As(err, &userFacingErr):
		WriteJSON(w, r, httpErr.StatusCode(), ErrorResponse{Error: userFacingErr.UserMessage()})

	case errors.Is(err, port.ErrInvalidRecord), errors.Is(err, port.ErrInvalidTagSet):
		slog.DebugContext(ctx, "invalid request", slogx.Error(err))
		WriteJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, port.ErrNotFound):
		WriteJSON(w, r, http.StatusNotFound, ErrorResponse{Error: port.ErrNotFound.Error()})

	case errors.Is(err, service.ErrMissingUser):
		WriteJSON(w, r, ErrNotLoggedIn.StatusCode(), ErrorResponse{Error: ErrNotLoggedIn.UserMessage()})

	case errors.Is(err, port.ErrStorage):
		slog.ErrorContext(ctx, "storage failure", slogx.Error(err))
		WriteJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: port.ErrStorage.Error()})

	default:
		slog.ErrorContext(ctx, "unexpected error", slogx.Error(err))
		WriteJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

// Forbidden answers requests rejected by an authorization middleware.
var Forbidden = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	HandleError(w, r, ErrForbidden)
})

// NotLoggedIn answers requests that require a signed in user.
var NotLoggedIn = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	HandleError(w, r, ErrNotLoggedIn)
})
