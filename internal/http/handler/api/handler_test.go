package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/InterNutter/instants/internal/adapter/memory"
	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/core/service"
	httpCtx "github.com/InterNutter/instants/internal/http/context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@example.com"

var (
	admin   = model.NewUser("admin", adminEmail, "Admin", nil)
	visitor = model.NewUser("visitor", "visitor@example.com", "Visitor", nil)
)

func newTestHandler(t *testing.T) (*Handler, *service.Archive) {
	archive := service.NewArchive(memory.NewStore())
	return NewHandler(archive, adminEmail), archive
}

func serve(h http.Handler, user model.User, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if user != nil {
		req = req.WithContext(httpCtx.SetUser(req.Context(), user))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSaveStoryScenario(t *testing.T) {
	h, archive := newTestHandler(t)
	ctx := context.Background()

	body := `{"number":1,"year":2024,"day":5,"title":"T","prompt":"P","content":"C"}`

	rec := serve(h, visitor, http.MethodPost, "/story", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized", decode[map[string]string](t, rec)["error"])

	_, err := archive.GetStory(ctx, 1)
	assert.True(t, errors.Is(err, port.ErrNotFound), "no row must have been written")

	rec = serve(h, nil, http.MethodPost, "/story", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(h, admin, http.MethodPost, "/story", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, SaveStoryResponse{Message: "new story created", Number: 1}, decode[SaveStoryResponse](t, rec))

	body = `{"number":1,"year":2024,"day":5,"title":"T2","prompt":"P","content":"C"}`

	rec = serve(h, admin, http.MethodPost, "/story", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, SaveStoryResponse{Message: "story updated", Number: 1}, decode[SaveStoryResponse](t, rec))

	story, err := archive.GetStory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "T2", story.Title)
}

func TestSaveStoryInvalid(t *testing.T) {
	h, _ := newTestHandler(t)

	type testCase struct {
		Name string
		Body string
	}

	testCases := []testCase{
		{Name: "MalformedJSON", Body: `{"number":`},
		{Name: "MissingTitle", Body: `{"number":1,"year":2024,"day":5,"prompt":"P","content":"C"}`},
		{Name: "DayOutOfRange", Body: `{"number":1,"year":2024,"day":367,"title":"T","prompt":"P","content":"C"}`},
		{Name: "NegativeNumber", Body: `{"number":-3,"year":2024,"day":5,"title":"T","prompt":"P","content":"C"}`},
		{Name: "WrongType", Body: `{"number":"one","year":2024,"day":5,"title":"T","prompt":"P","content":"C"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := serve(h, admin, http.MethodPost, "/story", tc.Body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestGetStory(t *testing.T) {
	h, archive := newTestHandler(t)
	ctx := context.Background()

	rec := serve(h, nil, http.MethodGet, "/story/last", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, n := range []model.StoryNumber{2, 7} {
		_, err := archive.SaveStory(ctx, model.Story{Number: n, Year: 2024, Day: int(n), Title: "T", Prompt: "P", Content: "C"})
		require.NoError(t, err)
	}

	require.NoError(t, archive.ReplaceTags(ctx, 7, []string{"b", "a"}))

	rec = serve(h, nil, http.MethodGet, "/story/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[GetStoryResponse](t, rec)
	assert.Equal(t, model.StoryNumber(7), res.Number)
	assert.Equal(t, 7, res.Day)
	assert.Equal(t, []string{"a", "b"}, res.Tags)

	rec = serve(h, nil, http.MethodGet, "/story/last", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StoryNumber(7), decode[GetStoryResponse](t, rec).Number)

	rec = serve(h, nil, http.MethodGet, "/story/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, nil, http.MethodGet, "/story/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, nil, http.MethodGet, "/story/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceTags(t *testing.T) {
	h, archive := newTestHandler(t)
	ctx := context.Background()

	_, err := archive.SaveStory(ctx, model.Story{Number: 7, Year: 2024, Day: 7, Title: "T", Prompt: "P", Content: "C"})
	require.NoError(t, err)

	rec := serve(h, visitor, http.MethodPost, "/tags/7", `["x"]`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for range 2 {
		rec = serve(h, admin, http.MethodPost, "/tags/7", `["a","b","a"]`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, SuccessResponse{Success: true}, decode[SuccessResponse](t, rec))
	}

	rec = serve(h, nil, http.MethodGet, "/tags/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b"}, decode[[]string](t, rec))

	rec = serve(h, admin, http.MethodPost, "/tags/7", `[]`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, nil, http.MethodGet, "/tags/7", "")
	assert.Equal(t, []string{}, decode[[]string](t, rec))

	for _, body := range []string{`null`, `{"tags":["a"]}`, `["a",""]`, `[1,2]`} {
		rec = serve(h, admin, http.MethodPost, "/tags/7", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = serve(h, admin, http.MethodPost, "/tags/zero", `["a"]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavourites(t *testing.T) {
	h, archive := newTestHandler(t)
	ctx := context.Background()

	_, err := archive.SaveStory(ctx, model.Story{Number: 3, Year: 2024, Day: 3, Title: "T", Prompt: "P", Content: "C"})
	require.NoError(t, err)

	rec := serve(h, nil, http.MethodPost, "/favourite", `{"number":3,"set":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not logged in", decode[map[string]string](t, rec)["error"])

	rec = serve(h, nil, http.MethodGet, "/favourites", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, visitor, http.MethodGet, "/favourites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ListFavouritesResponse{Favourites: []model.StoryNumber{}}, decode[ListFavouritesResponse](t, rec))

	for range 2 {
		rec = serve(h, visitor, http.MethodPost, "/favourite", `{"number":3,"set":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = serve(h, visitor, http.MethodGet, "/favourites", "")
	assert.Equal(t, []model.StoryNumber{3}, decode[ListFavouritesResponse](t, rec).Favourites)

	rec = serve(h, visitor, http.MethodPost, "/favourite", `{"number":4,"set":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, visitor, http.MethodPost, "/favourite", `{"number":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, visitor, http.MethodPost, "/favourite", `{"number":3,"set":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, visitor, http.MethodGet, "/favourites", "")
	assert.Empty(t, decode[ListFavouritesResponse](t, rec).Favourites)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, nil, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: "ok"}, decode[HealthResponse](t, rec))
}
