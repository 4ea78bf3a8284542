package cache

import (
	"context"
	"slices"
	"time"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is a read-through cache in front of a port.Store. Every write evicts
// the entries it may have changed, whether it succeeded or not. A read that
// overlapped a write on the same key does not fill the cache.
//
// Writes made through another store on the same database are not seen.
type Store struct {
	backend          port.Store
	storyCache       *MultiIndexCache[*CacheableStory]
	storyGenerations *generations[string]
	tagCache         *expirable.LRU[model.StoryNumber, []string]
	tagGenerations   *generations[model.StoryNumber]
}

// GetLastStory implements [port.StoryStore].
func (s *Store) GetLastStory(ctx context.Context) (*model.Story, error) {
	if cached, exists := s.storyCache.Get(keyLastStory); exists {
		return cached.Story(), nil
	}

	gen := s.storyGenerations.Current(keyLastStory)

	story, err := s.backend.GetLastStory(ctx)
	if err != nil {
		return nil, err
	}

	s.storyGenerations.IfCurrent(keyLastStory, gen, func() {
		s.storyCache.Add(NewCacheableStory(*story, true))
	})

	return story, nil
}

// GetStory implements [port.StoryStore].
func (s *Store) GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, error) {
	key := getStoryCacheKey(number)

	if cached, exists := s.storyCache.Get(key); exists {
		return cached.Story(), nil
	}

	gen := s.storyGenerations.Current(key)

	story, err := s.backend.GetStory(ctx, number)
	if err != nil {
		return nil, err
	}

	s.storyGenerations.IfCurrent(key, gen, func() {
		s.storyCache.Add(NewCacheableStory(*story, false))
	})

	return story, nil
}

// UpsertStory implements [port.StoryStore].
func (s *Store) UpsertStory(ctx context.Context, story model.Story) (*port.UpsertResult, error) {
	defer func() {
		key := getStoryCacheKey(story.Number)
		s.storyGenerations.Bump(key, keyLastStory)
		s.storyCache.Remove(key)
		s.storyCache.Remove(keyLastStory)
	}()

	return s.backend.UpsertStory(ctx, story)
}

// GetTags implements [port.TagStore].
func (s *Store) GetTags(ctx context.Context, number model.StoryNumber) ([]string, error) {
	if tags, exists := s.tagCache.Get(number); exists {
		return slices.Clone(tags), nil
	}

	gen := s.tagGenerations.Current(number)

	tags, err := s.backend.GetTags(ctx, number)
	if err != nil {
		return nil, err
	}

	s.tagGenerations.IfCurrent(number, gen, func() {
		s.tagCache.Add(number, slices.Clone(tags))
	})

	return tags, nil
}

// ReplaceTags implements [port.TagStore].
func (s *Store) ReplaceTags(ctx context.Context, number model.StoryNumber, tags []string) error {
	defer func() {
		s.tagGenerations.Bump(number)
		s.tagCache.Remove(number)
	}()

	return s.backend.ReplaceTags(ctx, number, tags)
}

// QueryFavourites implements [port.FavouriteStore].
func (s *Store) QueryFavourites(ctx context.Context, email string) ([]model.StoryNumber, error) {
	return s.backend.QueryFavourites(ctx, email)
}

// SetFavourite implements [port.FavouriteStore].
func (s *Store) SetFavourite(ctx context.Context, email string, number model.StoryNumber, favourite bool) error {
	return s.backend.SetFavourite(ctx, email, number, favourite)
}

func NewStore(backend port.Store, size int, ttl time.Duration) *Store {
	return &Store{
		backend:          backend,
		storyCache:       NewMultiIndexCache[*CacheableStory](size, ttl),
		storyGenerations: newGenerations[string](),
		tagCache:         expirable.NewLRU[model.StoryNumber, []string](size, nil, ttl),
		tagGenerations:   newGenerations[model.StoryNumber](),
	}
}

var _ port.Store = &Store{}
