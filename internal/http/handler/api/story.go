package api

import (
	"log/slog"
	"net/http"

	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/pkg/errors"
)

const (
	messageStoryCreated = "new story created"
	messageStoryUpdated = "story updated"
)

type GetStoryResponse struct {
	model.Story
	Tags []string `json:"tags"`
}

func (h *Handler) handleGetStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		story *model.Story
		err   error
	)

	if r.PathValue("storyID") == lastStoryID {
		story, err = h.archive.GetLastStory(ctx)
	} else {
		var number model.StoryNumber

		number, err = getStoryNumber(r)
		if err == nil {
			story, err = h.archive.GetStory(ctx, number)
		}
	}
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	tags, err := h.archive.GetTags(ctx, story.Number)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	common.WriteJSON(w, r, http.StatusOK, GetStoryResponse{
		Story: *story,
		Tags:  tags,
	})
}

type SaveStoryResponse struct {
	Message string            `json:"message"`
	Number  model.StoryNumber `json:"number"`
}

func (h *Handler) handleSaveStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var story model.Story
	if err := decodeBody(w, r, &story); err != nil {
		common.HandleError(w, r, errors.Wrapf(port.ErrInvalidRecord, "could not decode story: %s", err))
		return
	}

	result, err := h.archive.SaveStory(ctx, story)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	res := SaveStoryResponse{
		Message: messageStoryUpdated,
		Number:  result.Number,
	}

	if result.Created {
		res.Message = messageStoryCreated
	}

	slog.InfoContext(ctx, "story saved", slog.Int64("number", int64(result.Number)), slog.Bool("created", result.Created))

	common.WriteJSON(w, r, http.StatusOK, res)
}
