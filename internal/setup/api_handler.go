package setup

import (
	"context"

	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/http/handler/api"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	archive, err := GetArchiveFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if conf.HTTP.Authz.AdminEmail == "" {
		return nil, errors.New("missing administrator email")
	}

	return api.NewHandler(archive, conf.HTTP.Authz.AdminEmail), nil
}
