package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	type testCase struct {
		Name           string
		Err            error
		ExpectedStatus int
		ExpectedError  string
	}

	invalidStory := model.Story{Number: 1}

	testCases := []testCase{
		{
			Name:           "InvalidRecord",
			Err:            errors.WithStack(invalidStory.Validate()),
			ExpectedStatus: http.StatusBadRequest,
			ExpectedError:  "year must be a positive integer: invalid story",
		},
		{
			Name:           "InvalidTagSet",
			Err:            errors.Wrap(port.ErrInvalidTagSet, "missing tag list"),
			ExpectedStatus: http.StatusBadRequest,
			ExpectedError:  "missing tag list: invalid tag set",
		},
		{
			Name:           "NotFound",
			Err:            errors.WithStack(port.ErrNotFound),
			ExpectedStatus: http.StatusNotFound,
			ExpectedError:  "not found",
		},
		{
			Name:           "Storage",
			Err:            errors.WithStack(port.NewStorageError("insert story", errors.New("disk I/O error"))),
			ExpectedStatus: http.StatusInternalServerError,
			ExpectedError:  "storage failure",
		},
		{
			Name:           "NotLoggedIn",
			Err:            ErrNotLoggedIn,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedError:  "Not logged in",
		},
		{
			Name:           "Unexpected",
			Err:            errors.New("boom"),
			ExpectedStatus: http.StatusInternalServerError,
			ExpectedError:  "Internal Server Error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(rec, req, tc.Err)

			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var res ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, tc.ExpectedError, res.Error)
		})
	}
}
