package api

import (
	"net/http"

	"github.com/InterNutter/instants/internal/core/port"
	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/pkg/errors"
)

type SuccessResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) handleGetTags(w http.ResponseWriter, r *http.Request) {
	number, err := getStoryNumber(r)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	tags, err := h.archive.GetTags(r.Context(), number)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	common.WriteJSON(w, r, http.StatusOK, tags)
}

func (h *Handler) handleReplaceTags(w http.ResponseWriter, r *http.Request) {
	number, err := getStoryNumber(r)
	if err != nil {
		common.HandleError(w, r, errors.Wrap(port.ErrInvalidTagSet, err.Error()))
		return
	}

	var tags []string
	if err := decodeBody(w, r, &tags); err != nil {
		common.HandleError(w, r, errors.Wrapf(port.ErrInvalidTagSet, "could not decode tags: %s", err))
		return
	}

	if err := h.archive.ReplaceTags(r.Context(), number, tags); err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	common.WriteJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
