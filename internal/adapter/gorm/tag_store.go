package gorm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/bornholm/go-x/slogx"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReplaceTags implements port.TagStore.
//
// By default the delete and the inserts are issued one after the other on a
// single connection without a transaction: every statement is executed even
// after a failure and only the first error is returned, leaving a partially
// applied set. With the atomic option the statements share one transaction
// which is rolled back on the first error.
func (s *Store) ReplaceTags(ctx context.Context, number model.StoryNumber, tags []string) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(port.NewStorageError("open database", err))
	}

	db = db.WithContext(ctx)

	if s.atomicTags {
		err := db.Transaction(func(tx *gorm.DB) error {
			return replaceTags(tx, number, tags, true).Err()
		})
		if err != nil {
			return errors.WithStack(port.NewStorageError("replace tags", err))
		}

		return nil
	}

	var results StatementResults

	err = db.Connection(func(conn *gorm.DB) error {
		results = replaceTags(conn.Session(&gorm.Session{NewDB: true}), number, tags, false)
		return nil
	})
	if err != nil {
		return errors.WithStack(port.NewStorageError("replace tags", err))
	}

	if failed := results.Failed(); failed > 0 {
		slog.WarnContext(ctx, "tag set partially applied",
			slog.Int64("number", int64(number)),
			slog.Int("statements", len(results)),
			slog.Int("failed", failed),
		)
	}

	if err := results.Err(); err != nil {
		return errors.WithStack(port.NewStorageError("replace tags", err))
	}

	return nil
}

func replaceTags(db *gorm.DB, number model.StoryNumber, tags []string, stopOnError bool) StatementResults {
	results := make(StatementResults, 0, len(tags)+1)

	err := db.Where("number = ?", int64(number)).Delete(&Tag{}).Error
	results = append(results, StatementResult{Statement: "delete tags", Err: err})
	if err != nil && stopOnError {
		return results
	}

	for _, t := range tags {
		err := db.Create(&Tag{Number: int64(number), Tag: t}).Error
		if err != nil {
			slog.Debug("could not insert tag", slog.String("tag", t), slogx.Error(err))
		}

		results = append(results, StatementResult{Statement: fmt.Sprintf("insert tag %q", t), Err: err})
		if err != nil && stopOnError {
			return results
		}
	}

	return results
}

// GetTags implements port.TagStore.
func (s *Store) GetTags(ctx context.Context, number model.StoryNumber) ([]string, error) {
	tags := make([]string, 0)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&Tag{}).Where("number = ?", int64(number)).Order("tag asc").Pluck("tag", &tags).Error; err != nil {
			return errors.WithStack(port.NewStorageError("get tags", err))
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tags, nil
}
