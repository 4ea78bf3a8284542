package client

import (
	"context"
	"strconv"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/http/handler/api"
	"github.com/pkg/errors"
)

// GetStory returns the story and its tags.
func (c *Client) GetStory(ctx context.Context, number model.StoryNumber) (*model.Story, []string, error) {
	return c.getStory(ctx, strconv.FormatInt(int64(number), 10))
}

// GetLastStory returns the story with the highest number and its tags.
func (c *Client) GetLastStory(ctx context.Context) (*model.Story, []string, error) {
	return c.getStory(ctx, "last")
}

func (c *Client) getStory(ctx context.Context, storyID string) (*model.Story, []string, error) {
	var res api.GetStoryResponse

	if err := c.getJSON(ctx, "/story/"+storyID, &res); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return &res.Story, res.Tags, nil
}

func (c *Client) GetTags(ctx context.Context, number model.StoryNumber) ([]string, error) {
	tags := make([]string, 0)

	if err := c.getJSON(ctx, "/tags/"+strconv.FormatInt(int64(number), 10), &tags); err != nil {
		return nil, errors.WithStack(err)
	}

	return tags, nil
}

func (c *Client) Health(ctx context.Context) error {
	var res api.HealthResponse

	if err := c.getJSON(ctx, "/health", &res); err != nil {
		return errors.WithStack(err)
	}

	if res.Status != "ok" {
		return errors.Errorf("unexpected health status '%s'", res.Status)
	}

	return nil
}
