package model

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidStory = errors.New("invalid story")

type StoryNumber int64

type Story struct {
	Number  StoryNumber `json:"number"`
	Year    int         `json:"year"`
	Day     int         `json:"day"`
	Title   string      `json:"title"`
	Prompt  string      `json:"prompt"`
	Content string      `json:"content"`
}

// Validate checks that every field required to persist the story is present
// and well formed.
func (s *Story) Validate() error {
	if err := s.Number.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if s.Year <= 0 {
		return errors.Wrap(ErrInvalidStory, "year must be a positive integer")
	}

	if s.Day < 1 || s.Day > 366 {
		return errors.Wrapf(ErrInvalidStory, "day must be between 1 and 366, got %d", s.Day)
	}

	fields := []struct {
		Name  string
		Value string
	}{
		{"title", s.Title},
		{"prompt", s.Prompt},
		{"content", s.Content},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return errors.Wrapf(ErrInvalidStory, "%s must not be empty", f.Name)
		}
	}

	return nil
}

func (n StoryNumber) Validate() error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidStory, "number must be a positive integer, got %d", n)
	}

	return nil
}
