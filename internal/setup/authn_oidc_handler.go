package setup

import (
	"context"

	"github.com/InterNutter/instants/internal/authn"
	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/http/middleware/authn/oidc"
	"github.com/pkg/errors"
)

var getOIDCAuthnHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*oidc.Handler, error) {
	sessionStore, err := getSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	client, err := getOIDCClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	coordinator := authn.NewCoordinator(client,
		authn.WithTimeout(conf.HTTP.Authn.OIDC.Timeout),
		authn.WithDefaultRedirect(conf.HTTP.BaseURL),
	)

	return oidc.NewHandler(coordinator, sessionStore), nil
})
