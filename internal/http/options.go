package http

import (
	"net/http"
	"time"
)

type CORS struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

type Options struct {
	Address         string
	BaseURL         string
	CORS            CORS
	ShutdownTimeout time.Duration
	Mounts          map[string]http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":3000",
		BaseURL: "",
		CORS: CORS{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
		ShutdownTimeout: 10 * time.Second,
		Mounts:          map[string]http.Handler{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithMount registers the handler on the given pattern. The pattern follows
// the [http.ServeMux] syntax and is resolved relative to the base URL.
func WithMount(pattern string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[pattern] = handler
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithCORS(allowedOrigins []string, allowCredentials bool) OptionFunc {
	return func(opts *Options) {
		opts.CORS = CORS{
			AllowedOrigins:   allowedOrigins,
			AllowCredentials: allowCredentials,
		}
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}
