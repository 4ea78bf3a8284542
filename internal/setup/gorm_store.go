package setup

import (
	"context"

	gormAdapter "github.com/InterNutter/instants/internal/adapter/gorm"
	"github.com/InterNutter/instants/internal/config"
	"github.com/pkg/errors"
)

var getGormStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*gormAdapter.Store, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store := gormAdapter.NewStore(
		db,
		gormAdapter.WithAtomicTags(conf.Storage.Tags.Atomic),
		gormAdapter.WithRetry(conf.Storage.Database.MaxRetries, conf.Storage.Database.RetryDelay),
	)

	return store, nil
})
