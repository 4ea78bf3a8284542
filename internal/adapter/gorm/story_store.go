package gorm

import (
	"context"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UpsertStory implements port.StoryStore.
//
// The story is updated by number and inserted when the update matched no
// row. A failed update is never followed by an insert and a failed insert is
// not retried. Both statements run under the lock of the story number.
func (s *Store) UpsertStory(ctx context.Context, story model.Story) (*port.UpsertResult, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(port.NewStorageError("open database", err))
	}

	db = db.WithContext(ctx)

	unlock := s.locks.Lock(int64(story.Number))
	defer unlock()

	res := db.Model(&Story{}).
		Where("number = ?", int64(story.Number)).
		Updates(map[string]any{
			"year":    story.Year,
			"day":     story.Day,
			"title":   story.Title,
			"prompt":  story.Prompt,
			"content": story.Content,
		})
	if res.Error != nil {
		return nil, errors.WithStack(port.NewStorageError("update story", res.Error))
	}

	if res.RowsAffected > 0 {
		return &port.UpsertResult{
			Created: false,
			Number:  story.Number,
		}, nil
	}

	if err := db.Create(fromStory(story)).Error; err != nil {
		return nil, errors.WithStack(port.NewStorageError("insert story", err))
	}

	return &port.UpsertResult{
		Created: true,
		Number:  story.Number,
	}, nil
}

// GetStory implements port.StoryStore.
func (s *Store) GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, error) {
	var story Story

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&story, "number = ?", int64(number)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(port.NewStorageError("get story", err))
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toStory(&story), nil
}

// GetLastStory implements port.StoryStore.
func (s *Store) GetLastStory(ctx context.Context) (*model.Story, error) {
	var story Story

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Order("number desc").First(&story).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(port.NewStorageError("get last story", err))
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toStory(&story), nil
}
