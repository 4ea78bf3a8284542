package api

import (
	"net/http"

	"github.com/InterNutter/instants/internal/core/model"
	httpCtx "github.com/InterNutter/instants/internal/http/context"
	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/pkg/errors"
)

var ErrInvalidFavourite = common.NewError("invalid favourite request", "Invalid favourite request", http.StatusBadRequest)

type SetFavouriteRequest struct {
	Number model.StoryNumber `json:"number"`
	Set    *bool             `json:"set"`
}

func (h *Handler) handleSetFavourite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	var req SetFavouriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		common.HandleError(w, r, errors.WithStack(ErrInvalidFavourite))
		return
	}

	if req.Set == nil {
		common.HandleError(w, r, errors.WithStack(ErrInvalidFavourite))
		return
	}

	if err := req.Number.Validate(); err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	if err := h.archive.SetFavourite(ctx, user, req.Number, *req.Set); err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	common.WriteJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

type ListFavouritesResponse struct {
	Favourites []model.StoryNumber `json:"favourites"`
}

func (h *Handler) handleListFavourites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := httpCtx.User(ctx)

	favourites, err := h.archive.ListFavourites(ctx, user)
	if err != nil {
		common.HandleError(w, r, errors.WithStack(err))
		return
	}

	if favourites == nil {
		favourites = make([]model.StoryNumber, 0)
	}

	common.WriteJSON(w, r, http.StatusOK, ListFavouritesResponse{Favourites: favourites})
}
