package story

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/InterNutter/instants/internal/adapter/memory"
	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/service"
	"github.com/InterNutter/instants/internal/http/handler/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRemoteStory(t *testing.T) {
	ctx := context.Background()
	archive := service.NewArchive(memory.NewStore())

	_, err := archive.SaveStory(ctx, model.Story{Number: 8, Year: 2024, Day: 8, Title: "T", Prompt: "P", Content: "C"})
	require.NoError(t, err)

	server := httptest.NewServer(api.NewHandler(archive, "admin@example.com"))
	defer server.Close()

	output, err := fetchRemoteStory(ctx, server.URL, "last")
	require.NoError(t, err)
	assert.Equal(t, model.StoryNumber(8), output.Number)
	assert.Equal(t, []string{}, output.Tags)

	output, err = fetchRemoteStory(ctx, server.URL, "8")
	require.NoError(t, err)
	assert.Equal(t, "T", output.Title)

	_, err = fetchRemoteStory(ctx, server.URL, "eight")
	assert.Error(t, err)

	_, err = fetchRemoteStory(ctx, server.URL, "9")
	assert.Error(t, err)
}

func TestPrintStory(t *testing.T) {
	output := storyOutput{
		Story: model.Story{Number: 1, Year: 2024, Day: 5, Title: "T", Prompt: "P", Content: "C"},
		Tags:  []string{"a"},
	}

	var sb strings.Builder
	require.NoError(t, printStory(&sb, formatYAML, output))
	assert.Contains(t, sb.String(), "title: T\n")
	assert.Contains(t, sb.String(), "tags:\n    - a\n")

	sb.Reset()
	require.NoError(t, printStory(&sb, formatJSON, output))
	assert.Contains(t, sb.String(), `"title": "T"`)

	assert.Error(t, printStory(&sb, "xml", output))
}
