package port

import (
	"context"

	"github.com/InterNutter/instants/internal/core/model"
)

type UpsertResult struct {
	// Created is true when the insert path was taken
	Created bool
	Number  model.StoryNumber
}

type StoryStore interface {
	UpsertStory(ctx context.Context, story model.Story) (*UpsertResult, error)
	GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, error)
	GetLastStory(ctx context.Context) (*model.Story, error)
}

type TagStore interface {
	// ReplaceTags deletes every tag of the story then inserts the given ones.
	ReplaceTags(ctx context.Context, number model.StoryNumber, tags []string) error
	GetTags(ctx context.Context, number model.StoryNumber) ([]string, error)
}

type FavouriteStore interface {
	SetFavourite(ctx context.Context, email string, number model.StoryNumber, favourite bool) error
	QueryFavourites(ctx context.Context, email string) ([]model.StoryNumber, error)
}

type Store interface {
	StoryStore
	TagStore
	FavouriteStore
}
