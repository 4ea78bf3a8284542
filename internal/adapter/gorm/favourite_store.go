package gorm

import (
	"context"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetFavourite implements port.FavouriteStore.
func (s *Store) SetFavourite(ctx context.Context, email string, number model.StoryNumber, favourite bool) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(port.NewStorageError("open database", err))
	}

	db = db.WithContext(ctx)

	if !favourite {
		if err := db.Delete(&Favourite{}, "email = ? AND number = ?", email, int64(number)).Error; err != nil {
			return errors.WithStack(port.NewStorageError("delete favourite", err))
		}

		return nil
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "number"}},
		DoNothing: true,
	}).Create(&Favourite{Email: email, Number: int64(number)}).Error
	if err != nil {
		return errors.WithStack(port.NewStorageError("insert favourite", err))
	}

	return nil
}

// QueryFavourites implements port.FavouriteStore.
func (s *Store) QueryFavourites(ctx context.Context, email string) ([]model.StoryNumber, error) {
	var numbers []int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&Favourite{}).Where("email = ?", email).Order("number asc").Pluck("number", &numbers).Error; err != nil {
			return errors.WithStack(port.NewStorageError("query favourites", err))
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	favourites := make([]model.StoryNumber, 0, len(numbers))
	for _, n := range numbers {
		favourites = append(favourites, model.StoryNumber(n))
	}

	return favourites, nil
}
