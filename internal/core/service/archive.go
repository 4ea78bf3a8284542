package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Archive struct {
	store port.Store
}

func NewArchive(store port.Store) *Archive {
	return &Archive{
		store: store,
	}
}

// SaveStory validates the story then updates it, or inserts it when no story
// with the same number exists yet.
func (a *Archive) SaveStory(ctx context.Context, story model.Story) (*port.UpsertResult, error) {
	if err := story.Validate(); err != nil {
		metrics.StoryUpserts.WithLabelValues(metrics.StatusInvalid).Inc()
		return nil, errors.WithStack(err)
	}

	result, err := a.store.UpsertStory(ctx, story)
	if err != nil {
		metrics.StoryUpserts.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, errors.WithStack(err)
	}

	status := metrics.StatusUpdated
	if result.Created {
		status = metrics.StatusCreated
	}

	metrics.StoryUpserts.WithLabelValues(status).Inc()

	slog.DebugContext(ctx, "story saved", slog.Int64("number", int64(result.Number)), slog.Bool("created", result.Created))

	return result, nil
}

func (a *Archive) GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, error) {
	if err := number.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	story, err := a.store.GetStory(ctx, number)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return story, nil
}

func (a *Archive) GetLastStory(ctx context.Context) (*model.Story, error) {
	story, err := a.store.GetLastStory(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return story, nil
}

// ReplaceTags replaces the whole tag set of the story. A nil list is rejected,
// an empty one clears the set.
func (a *Archive) ReplaceTags(ctx context.Context, number model.StoryNumber, tags []string) error {
	normalized, err := normalizeTags(number, tags)
	if err != nil {
		metrics.TagReplacements.WithLabelValues(metrics.StatusInvalid).Inc()
		return errors.WithStack(err)
	}

	if err := a.store.ReplaceTags(ctx, number, normalized); err != nil {
		metrics.TagReplacements.WithLabelValues(metrics.StatusFailed).Inc()
		slog.ErrorContext(ctx, "could not replace tags", slog.Int64("number", int64(number)), slogx.Error(err))
		return errors.WithStack(err)
	}

	metrics.TagReplacements.WithLabelValues(metrics.StatusSuccess).Inc()

	return nil
}

func (a *Archive) GetTags(ctx context.Context, number model.StoryNumber) ([]string, error) {
	if err := number.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	tags, err := a.store.GetTags(ctx, number)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tags, nil
}

// SetFavourite marks or unmarks the story as a favourite of the given user.
// The story must exist.
func (a *Archive) SetFavourite(ctx context.Context, user model.User, number model.StoryNumber, favourite bool) error {
	if user == nil || user.Email() == "" {
		return errors.WithStack(ErrMissingUser)
	}

	if _, err := a.GetStory(ctx, number); err != nil {
		return errors.WithStack(err)
	}

	if err := a.store.SetFavourite(ctx, user.Email(), number, favourite); err != nil {
		metrics.FavouriteUpdates.WithLabelValues(metrics.StatusFailed).Inc()
		return errors.WithStack(err)
	}

	metrics.FavouriteUpdates.WithLabelValues(metrics.StatusSuccess).Inc()

	return nil
}

func (a *Archive) ListFavourites(ctx context.Context, user model.User) ([]model.StoryNumber, error) {
	if user == nil || user.Email() == "" {
		return nil, errors.WithStack(ErrMissingUser)
	}

	numbers, err := a.store.QueryFavourites(ctx, user.Email())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return numbers, nil
}

func normalizeTags(number model.StoryNumber, tags []string) ([]string, error) {
	if err := number.Validate(); err != nil {
		return nil, errors.Wrap(port.ErrInvalidTagSet, err.Error())
	}

	if tags == nil {
		return nil, errors.Wrap(port.ErrInvalidTagSet, "missing tag list")
	}

	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))

	for i, t := range tags {
		if strings.TrimSpace(t) == "" {
			return nil, errors.Wrapf(port.ErrInvalidTagSet, "tag #%d is empty", i)
		}

		if _, exists := seen[t]; exists {
			continue
		}

		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}

	return normalized, nil
}
