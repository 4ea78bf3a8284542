package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHandlerMounts(t *testing.T) {
	type testCase struct {
		Name     string
		BaseURL  string
		Target   string
		Expected string
	}

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("root:" + r.URL.Path))
	})

	signIn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("sign-in:" + r.URL.Path))
	})

	testCases := []testCase{
		{Name: "RootBaseURL", BaseURL: "/", Target: "/story/1", Expected: "root:/story/1"},
		{Name: "EmptyBaseURL", BaseURL: "", Target: "/sign-in", Expected: "sign-in:/sign-in"},
		{Name: "PrefixedBaseURL", BaseURL: "https://example.com/instants/", Target: "/instants/sign-in", Expected: "sign-in:/sign-in"},
		{Name: "PrefixedRoot", BaseURL: "/instants", Target: "/instants/story/last", Expected: "root:/story/last"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			server := NewServer(
				WithBaseURL(tc.BaseURL),
				WithMount("/", root),
				WithMount("GET /sign-in", signIn),
			)

			handler, err := server.Handler()
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.Target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.Expected, rec.Body.String())
		})
	}
}

func TestServerHandlerRecovers(t *testing.T) {
	server := NewServer(WithMount("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	handler, err := server.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerHandlerCORS(t *testing.T) {
	server := NewServer(
		WithCORS([]string{"https://app.example.com"}, true),
		WithMount("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})),
	)

	handler, err := server.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerRunStopsOnCancel(t *testing.T) {
	server := NewServer(
		WithAddress("127.0.0.1:0"),
		WithShutdownTimeout(time.Second),
		WithMount("/", http.NotFoundHandler()),
	)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
