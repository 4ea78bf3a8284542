package setup

import (
	"context"

	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/core/service"
	"github.com/pkg/errors"
)

var GetArchiveFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Archive, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewArchive(store), nil
})
