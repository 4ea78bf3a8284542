package gorm

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/InterNutter/instants/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Options struct {
	// AtomicTags wraps every tag set replacement in a single transaction
	AtomicTags bool
	// MaxRetries bounds the retries of read queries on busy or locked databases
	MaxRetries int
	RetryDelay time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		AtomicTags: false,
		MaxRetries: 5,
		RetryDelay: 50 * time.Millisecond,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithAtomicTags(atomic bool) OptionFunc {
	return func(opts *Options) {
		opts.AtomicTags = atomic
	}
}

func WithRetry(maxRetries int, delay time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.MaxRetries = maxRetries
		opts.RetryDelay = delay
	}
}

type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
	locks       *keyedMutex[int64]
	atomicTags  bool
	maxRetries  int
	retryDelay  time.Duration
}

func NewStore(db *gorm.DB, funcs ...OptionFunc) *Store {
	opts := NewOptions(funcs...)

	return &Store{
		getDatabase: createGetDatabase(db),
		locks:       newKeyedMutex[int64](),
		atomicTags:  opts.AtomicTags,
		maxRetries:  opts.MaxRetries,
		retryDelay:  opts.RetryDelay,
	}
}

var _ port.Store = &Store{}

// withRetry runs fn and retries it while it fails with one of the given
// sqlite error codes. Only read queries go through it.
func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	db = db.WithContext(ctx)

	for attempt := 0; ; attempt++ {
		err := fn(ctx, db)
		if err == nil {
			return nil
		}

		var sqliteErr *sqlite3.Error
		if attempt >= s.maxRetries || !errors.As(err, &sqliteErr) || !slices.Contains(codes, sqliteErr.Code()) {
			return errors.WithStack(err)
		}

		slog.DebugContext(ctx, "database busy, retrying", slog.Int("attempt", attempt+1), slogx.Error(err))

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(s.retryDelay * time.Duration(attempt+1)):
		}
	}
}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			models := []any{
				&Story{},
				&Tag{},
				&Favourite{},
			}

			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}
