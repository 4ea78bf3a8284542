package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStoryValidate(t *testing.T) {
	valid := func() Story {
		return Story{Number: 1, Year: 2024, Day: 5, Title: "T", Prompt: "P", Content: "C"}
	}

	type testCase struct {
		Name   string
		Mutate func(s *Story)
		Valid  bool
	}

	testCases := []testCase{
		{Name: "Valid", Mutate: func(s *Story) {}, Valid: true},
		{Name: "LeapDay", Mutate: func(s *Story) { s.Day = 366 }, Valid: true},
		{Name: "ZeroNumber", Mutate: func(s *Story) { s.Number = 0 }},
		{Name: "NegativeNumber", Mutate: func(s *Story) { s.Number = -3 }},
		{Name: "MissingYear", Mutate: func(s *Story) { s.Year = 0 }},
		{Name: "DayZero", Mutate: func(s *Story) { s.Day = 0 }},
		{Name: "DayOverflow", Mutate: func(s *Story) { s.Day = 367 }},
		{Name: "EmptyTitle", Mutate: func(s *Story) { s.Title = "" }},
		{Name: "BlankPrompt", Mutate: func(s *Story) { s.Prompt = "  \n" }},
		{Name: "EmptyContent", Mutate: func(s *Story) { s.Content = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			story := valid()
			tc.Mutate(&story)

			err := story.Validate()
			if tc.Valid {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, ErrInvalidStory), "expected ErrInvalidStory, got %v", err)
		})
	}
}
