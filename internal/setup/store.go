package setup

import (
	"context"
	"log/slog"

	"github.com/InterNutter/instants/internal/adapter/cache"
	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/pkg/errors"
)

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	gormStore, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !conf.Storage.Cache.Enabled {
		return gormStore, nil
	}

	slog.DebugContext(ctx, "using story cache", slog.Int("size", conf.Storage.Cache.Size), slog.Duration("ttl", conf.Storage.Cache.TTL))

	return cache.NewStore(gormStore, conf.Storage.Cache.Size, conf.Storage.Cache.TTL), nil
})
