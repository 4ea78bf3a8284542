package setup

import (
	"context"
	"net/http"

	"github.com/InterNutter/instants/internal/config"
	httpServer "github.com/InterNutter/instants/internal/http"
	"github.com/InterNutter/instants/internal/http/handler/metrics"
	"github.com/InterNutter/instants/internal/http/middleware/authn"
	"github.com/InterNutter/instants/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

// NewHTTPServerFromConfig wires every handler of the server. The provider
// discovery happens here, so that no request is served before it succeeds.
func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*httpServer.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	oidcHandler, err := getOIDCAuthnHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure authn handler from config")
	}

	authnMiddleware := authn.Middleware(oidcHandler)

	rateLimit := func(h http.Handler) http.Handler { return h }
	if conf.HTTP.RateLimit.Enabled {
		rateLimit = ratelimit.Middleware(
			ratelimit.WithTrustHeaders(conf.HTTP.RateLimit.TrustHeaders),
			ratelimit.WithLimit(conf.HTTP.RateLimit.Interval, conf.HTTP.RateLimit.MaxBurst),
			ratelimit.WithCache(conf.HTTP.RateLimit.CacheSize, conf.HTTP.RateLimit.CacheTTL),
		)
	}

	limitedOIDCHandler := rateLimit(oidcHandler)

	options := []httpServer.OptionFunc{
		httpServer.WithAddress(conf.HTTP.Address),
		httpServer.WithBaseURL(conf.HTTP.BaseURL),
		httpServer.WithCORS(conf.HTTP.CORS.AllowedOrigins, conf.HTTP.CORS.AllowCredentials),
		httpServer.WithMount("GET /sign-in", limitedOIDCHandler),
		httpServer.WithMount("GET /callback", limitedOIDCHandler),
		httpServer.WithMount("GET /sign-out", oidcHandler),
		httpServer.WithMount("GET /account", oidcHandler),
		httpServer.WithMount("GET /metrics", metrics.NewHandler(nil)),
		httpServer.WithMount("/", authnMiddleware(api)),
	}

	server := httpServer.NewServer(options...)

	return server, nil
}
