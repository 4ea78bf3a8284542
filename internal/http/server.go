package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}

// Handler returns the root handler of the server, mounts included.
func (s *Server) Handler() (http.Handler, error) {
	basePath, err := s.basePath()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux := http.NewServeMux()

	for pattern, handler := range s.opts.Mounts {
		method, path, hasMethod := strings.Cut(pattern, " ")
		if !hasMethod {
			method, path = "", pattern
		}

		fullPath := basePath + path

		if method != "" {
			fullPath = method + " " + fullPath
		}

		slog.Debug("mounting handler", slog.String("pattern", fullPath))

		if basePath == "" {
			mux.Handle(fullPath, handler)
		} else {
			mux.Handle(fullPath, http.StripPrefix(basePath, handler))
		}
	}

	var handler http.Handler = mux

	handler = sloghttp.Recovery(handler)
	handler = sloghttp.NewWithConfig(slog.Default(), sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	})(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.opts.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: s.opts.CORS.AllowCredentials,
	})

	return corsHandler.Handler(handler), nil
}

// Run serves requests until the context is cancelled, then shuts the server
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return errors.WithStack(err)
	}

	server := &http.Server{
		Addr:              s.opts.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", slog.String("address", s.opts.Address))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "could not shutdown http server gracefully", slogx.Error(err))
		return errors.WithStack(err)
	}

	return nil
}

// basePath extracts the path of the base URL, without trailing slash.
func (s *Server) basePath() (string, error) {
	if s.opts.BaseURL == "" {
		return "", nil
	}

	u, err := url.Parse(s.opts.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse base url '%s'", s.opts.BaseURL)
	}

	return strings.TrimSuffix(u.Path, "/"), nil
}
