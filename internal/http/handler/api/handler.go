package api

import (
	"net/http"

	"github.com/InterNutter/instants/internal/core/service"
	"github.com/InterNutter/instants/internal/http/handler/common"
	"github.com/InterNutter/instants/internal/http/middleware/authz"
)

// maxBodySize bounds the size of decoded request bodies
const maxBodySize = 1 << 20

type Handler struct {
	archive *service.Archive
	mux     *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(archive *service.Archive, adminEmail string) *Handler {
	h := &Handler{
		archive: archive,
		mux:     &http.ServeMux{},
	}

	assertAdmin := authz.Middleware(common.Forbidden, authz.IsAdmin(adminEmail))
	assertUser := authz.Middleware(common.NotLoggedIn, authz.IsAuthenticated)

	h.mux.HandleFunc("GET /health", h.handleHealth)

	h.mux.HandleFunc("GET /story/{storyID}", h.handleGetStory)
	h.mux.Handle("POST /story", assertAdmin(http.HandlerFunc(h.handleSaveStory)))

	h.mux.HandleFunc("GET /tags/{storyID}", h.handleGetTags)
	h.mux.Handle("POST /tags/{storyID}", assertAdmin(http.HandlerFunc(h.handleReplaceTags)))

	h.mux.Handle("POST /favourite", assertUser(http.HandlerFunc(h.handleSetFavourite)))
	h.mux.Handle("GET /favourites", assertUser(http.HandlerFunc(h.handleListFavourites)))

	return h
}

var _ http.Handler = &Handler{}
