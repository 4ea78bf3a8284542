package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/pkg/errors"
)

// Store is an in-process port.Store. All operations are serialized by a
// single mutex, so tag replacements are applied atomically.
type Store struct {
	mu         sync.RWMutex
	stories    map[model.StoryNumber]model.Story
	tags       map[model.StoryNumber][]string
	favourites map[string]map[model.StoryNumber]struct{}
}

// GetLastStory implements [port.StoryStore].
func (s *Store) GetLastStory(ctx context.Context) (*model.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		last  model.Story
		found bool
	)

	for number, story := range s.stories {
		if !found || number > last.Number {
			last = story
			found = true
		}
	}

	if !found {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return &last, nil
}

// GetStory implements [port.StoryStore].
func (s *Store) GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, exists := s.stories[number]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return &story, nil
}

// UpsertStory implements [port.StoryStore].
func (s *Store) UpsertStory(ctx context.Context, story model.Story) (*port.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.stories[story.Number]

	s.stories[story.Number] = story

	return &port.UpsertResult{
		Created: !exists,
		Number:  story.Number,
	}, nil
}

// GetTags implements [port.TagStore].
func (s *Store) GetTags(ctx context.Context, number model.StoryNumber) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := slices.Clone(s.tags[number])
	if tags == nil {
		tags = []string{}
	}

	slices.Sort(tags)

	return tags, nil
}

// ReplaceTags implements [port.TagStore].
func (s *Store) ReplaceTags(ctx context.Context, number model.StoryNumber, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			return errors.WithStack(port.NewStorageError("insert tag", errors.New("empty tag")))
		}

		if !slices.Contains(set, t) {
			set = append(set, t)
		}
	}

	s.tags[number] = set

	return nil
}

// QueryFavourites implements [port.FavouriteStore].
func (s *Store) QueryFavourites(ctx context.Context, email string) ([]model.StoryNumber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := make([]model.StoryNumber, 0, len(s.favourites[email]))
	for n := range s.favourites[email] {
		numbers = append(numbers, n)
	}

	slices.Sort(numbers)

	return numbers, nil
}

// SetFavourite implements [port.FavouriteStore].
func (s *Store) SetFavourite(ctx context.Context, email string, number model.StoryNumber, favourite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !favourite {
		delete(s.favourites[email], number)
		return nil
	}

	if _, exists := s.favourites[email]; !exists {
		s.favourites[email] = map[model.StoryNumber]struct{}{}
	}

	s.favourites[email][number] = struct{}{}

	return nil
}

func NewStore() *Store {
	return &Store{
		stories:    map[model.StoryNumber]model.Story{},
		tags:       map[model.StoryNumber][]string{},
		favourites: map[string]map[model.StoryNumber]struct{}{},
	}
}

var _ port.Store = &Store{}
