package testsuite

import (
	"context"
	"testing"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/pkg/errors"
)

// TestStore runs the behavioural checks shared by every port.Store
// implementation. The factory must return an empty store.
func TestStore(t *testing.T, factory func(t *testing.T) (port.Store, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store port.Store) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "UpsertCreatesThenUpdates",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				story := model.Story{Number: 42, Year: 2024, Day: 5, Title: "T", Prompt: "P", Content: "C"}

				first, err := store.UpsertStory(ctx, story)
				if err != nil {
					return errors.WithStack(err)
				}

				if !first.Created {
					t.Errorf("first.Created: expected true, got false")
				}

				if e, g := model.StoryNumber(42), first.Number; e != g {
					t.Errorf("first.Number: expected %d, got %d", e, g)
				}

				afterFirst, err := store.GetStory(ctx, 42)
				if err != nil {
					return errors.WithStack(err)
				}

				second, err := store.UpsertStory(ctx, story)
				if err != nil {
					return errors.WithStack(err)
				}

				if second.Created {
					t.Errorf("second.Created: expected false, got true")
				}

				afterSecond, err := store.GetStory(ctx, 42)
				if err != nil {
					return errors.WithStack(err)
				}

				if *afterFirst != *afterSecond {
					t.Errorf("stored story changed: expected %+v, got %+v", afterFirst, afterSecond)
				}

				if *afterSecond != story {
					t.Errorf("stored story: expected %+v, got %+v", story, afterSecond)
				}

				return nil
			},
		},
		{
			Name: "UpsertOverwritesFields",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				story := model.Story{Number: 1, Year: 2024, Day: 5, Title: "T", Prompt: "P", Content: "C"}

				if _, err := store.UpsertStory(ctx, story); err != nil {
					return errors.WithStack(err)
				}

				story.Title = "T2"
				story.Day = 6

				res, err := store.UpsertStory(ctx, story)
				if err != nil {
					return errors.WithStack(err)
				}

				if res.Created {
					t.Errorf("res.Created: expected false, got true")
				}

				stored, err := store.GetStory(ctx, 1)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := "T2", stored.Title; e != g {
					t.Errorf("stored.Title: expected %s, got %s", e, g)
				}

				if e, g := 6, stored.Day; e != g {
					t.Errorf("stored.Day: expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "GetMissingStory",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				if _, err := store.GetStory(ctx, 999); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("store.GetStory(): expected port.ErrNotFound, got %v", err)
				}

				if _, err := store.GetLastStory(ctx); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("store.GetLastStory(): expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "GetLastStory",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				for _, n := range []model.StoryNumber{3, 12, 7} {
					story := model.Story{Number: n, Year: 2024, Day: int(n), Title: "T", Prompt: "P", Content: "C"}
					if _, err := store.UpsertStory(ctx, story); err != nil {
						return errors.WithStack(err)
					}
				}

				last, err := store.GetLastStory(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := model.StoryNumber(12), last.Number; e != g {
					t.Errorf("last.Number: expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "ReplaceTagsIsSetIdempotent",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				for i := 0; i < 2; i++ {
					if err := store.ReplaceTags(ctx, 7, []string{"a", "b"}); err != nil {
						return errors.WithStack(err)
					}
				}

				tags, err := store.GetTags(ctx, 7)
				if err != nil {
					return errors.WithStack(err)
				}

				assertTags(t, []string{"a", "b"}, tags)

				return nil
			},
		},
		{
			Name: "ReplaceTagsRemovesPreviousSet",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				if err := store.ReplaceTags(ctx, 7, []string{"a", "b"}); err != nil {
					return errors.WithStack(err)
				}

				if err := store.ReplaceTags(ctx, 7, []string{"b", "c"}); err != nil {
					return errors.WithStack(err)
				}

				if err := store.ReplaceTags(ctx, 8, []string{"z"}); err != nil {
					return errors.WithStack(err)
				}

				tags, err := store.GetTags(ctx, 7)
				if err != nil {
					return errors.WithStack(err)
				}

				assertTags(t, []string{"b", "c"}, tags)

				return nil
			},
		},
		{
			Name: "ReplaceTagsWithEmptyListClears",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				if err := store.ReplaceTags(ctx, 7, []string{"a", "b"}); err != nil {
					return errors.WithStack(err)
				}

				if err := store.ReplaceTags(ctx, 7, []string{}); err != nil {
					return errors.WithStack(err)
				}

				tags, err := store.GetTags(ctx, 7)
				if err != nil {
					return errors.WithStack(err)
				}

				assertTags(t, []string{}, tags)

				return nil
			},
		},
		{
			Name: "Favourites",
			Run: func(t *testing.T, ctx context.Context, store port.Store) error {
				email := "reader@example.com"

				for _, n := range []model.StoryNumber{4, 2, 4} {
					if err := store.SetFavourite(ctx, email, n, true); err != nil {
						return errors.WithStack(err)
					}
				}

				if err := store.SetFavourite(ctx, "other@example.com", 9, true); err != nil {
					return errors.WithStack(err)
				}

				favourites, err := store.QueryFavourites(ctx, email)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := []model.StoryNumber{2, 4}, favourites; !equalNumbers(e, g) {
					t.Errorf("favourites: expected %v, got %v", e, g)
				}

				if err := store.SetFavourite(ctx, email, 4, false); err != nil {
					return errors.WithStack(err)
				}

				// Unsetting an absent favourite is a no-op
				if err := store.SetFavourite(ctx, email, 4, false); err != nil {
					return errors.WithStack(err)
				}

				favourites, err = store.QueryFavourites(ctx, email)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := []model.StoryNumber{2}, favourites; !equalNumbers(e, g) {
					t.Errorf("favourites: expected %v, got %v", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			store, err := factory(t)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			ctx := context.Background()

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}
		})
	}
}

func assertTags(t *testing.T, expected []string, actual []string) {
	t.Helper()

	if e, g := len(expected), len(actual); e != g {
		t.Fatalf("len(tags): expected %d, got %d (%v)", e, g, actual)
	}

	for i := range expected {
		if e, g := expected[i], actual[i]; e != g {
			t.Errorf("tags[%d]: expected %s, got %s", i, e, g)
		}
	}
}

func equalNumbers(expected, actual []model.StoryNumber) bool {
	if len(expected) != len(actual) {
		return false
	}

	for i := range expected {
		if expected[i] != actual[i] {
			return false
		}
	}

	return true
}
