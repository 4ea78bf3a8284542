package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(WithLimit(time.Hour, 2), WithTrustHeaders(true))(next)

	serve := func(forwardedFor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
		req.Header.Set("X-Forwarded-For", forwardedFor)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1").Code)

	limited := serve("10.0.0.1, 192.168.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	// Other clients have their own bucket
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.2").Code)
}

func TestGetRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Real-Ip", "10.0.0.9")

	assert.Equal(t, "192.0.2.1", getRemoteAddr(req, false))
	assert.Equal(t, "10.0.0.9", getRemoteAddr(req, true))
}

func TestLimiterCacheConcurrentFirstRequests(t *testing.T) {
	limiters := newLimiterCache(NewOptions())

	const workers = 50

	var wg sync.WaitGroup

	results := make(chan *rate.Limiter, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- limiters.Get("192.0.2.1")
		}()
	}

	wg.Wait()
	close(results)

	first := limiters.Get("192.0.2.1")
	for limiter := range results {
		assert.Same(t, first, limiter)
	}

	assert.NotSame(t, first, limiters.Get("192.0.2.2"))
}
