package cache

import (
	"strconv"

	"github.com/InterNutter/instants/internal/core/model"
)

const keyLastStory = "last"

type CacheableStory struct {
	story model.Story
	last  bool
}

// CacheKeys implements Cacheable.
func (s *CacheableStory) CacheKeys() []string {
	keys := []string{getStoryCacheKey(s.story.Number)}
	if s.last {
		keys = append(keys, keyLastStory)
	}

	return keys
}

// Story returns a copy of the cached story
func (s *CacheableStory) Story() *model.Story {
	story := s.story
	return &story
}

func NewCacheableStory(story model.Story, last bool) *CacheableStory {
	return &CacheableStory{
		story: story,
		last:  last,
	}
}

var _ Cacheable = &CacheableStory{}

func getStoryCacheKey(number model.StoryNumber) string {
	return strconv.FormatInt(int64(number), 10)
}
