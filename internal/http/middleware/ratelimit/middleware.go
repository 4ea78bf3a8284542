package ratelimit

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

type Options struct {
	// TrustHeaders uses X-Forwarded-For and X-Real-Ip to identify clients
	TrustHeaders bool
	Interval     time.Duration
	MaxBurst     int
	CacheSize    int
	CacheTTL     time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TrustHeaders: false,
		Interval:     6 * time.Second,
		MaxBurst:     10,
		CacheSize:    1024,
		CacheTTL:     time.Hour,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithTrustHeaders(trust bool) OptionFunc {
	return func(opts *Options) {
		opts.TrustHeaders = trust
	}
}

func WithLimit(interval time.Duration, maxBurst int) OptionFunc {
	return func(opts *Options) {
		opts.Interval = interval
		opts.MaxBurst = maxBurst
	}
}

func WithCache(size int, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.CacheSize = size
		opts.CacheTTL = ttl
	}
}

var ErrTooManyRequests = common.NewHTTPError(http.StatusTooManyRequests)

// Middleware limits the rate of requests per client address with a token
// bucket refilled every interval.
func Middleware(funcs ...OptionFunc) func(http.Handler) http.Handler {
	opts := NewOptions(funcs...)

	limiters := newLimiterCache(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := limiters.Get(getRemoteAddr(r, opts.TrustHeaders))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				common.HandleError(w, r, ErrTooManyRequests)
				return
			}

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				common.HandleError(w, r, ErrTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.MaxBurst))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Floor(limiter.Tokens())))

			next.ServeHTTP(w, r)
		})
	}
}

// limiterCache holds one limiter per client. Concurrent first requests of a
// client share the same limiter.
type limiterCache struct {
	mu       sync.Mutex
	cache    *expirable.LRU[string, *rate.Limiter]
	interval time.Duration
	burst    int
}

func newLimiterCache(opts *Options) *limiterCache {
	return &limiterCache{
		cache:    expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.CacheTTL),
		interval: opts.Interval,
		burst:    opts.MaxBurst,
	}
}

func (c *limiterCache) Get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, exists := c.cache.Get(key); exists {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Every(c.interval), c.burst)
	c.cache.Add(key, limiter)

	return limiter
}

func getRemoteAddr(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}

		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
