package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// ResponseError is returned when the server answers with an error status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}

	return e.Message
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	endpoint := c.baseURL.JoinPath(path)

	slog.DebugContext(ctx, "new client request", slog.String("url", endpoint.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	decoder := json.NewDecoder(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		var body common.ErrorResponse
		if err := decoder.Decode(&body); err != nil {
			slog.DebugContext(ctx, "could not decode error response", slog.Int("status", res.StatusCode))
		}

		return errors.WithStack(&ResponseError{StatusCode: res.StatusCode, Message: body.Error})
	}

	if err := decoder.Decode(result); err != nil {
		return errors.Wrap(err, "could not decode response")
	}

	return nil
}
