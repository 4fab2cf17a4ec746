package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"thewall/internal/httputil"
	"thewall/internal/service"
)

type WallHandler struct {
	contentService *service.ContentService
	log            zerolog.Logger
}

func NewWallHandler(contentService *service.ContentService, log zerolog.Logger) *WallHandler {
	return &WallHandler{contentService: contentService, log: log}
}

// Get handles GET /wall
// Returns every post with its comments and replies.
func (h *WallHandler) Get(w http.ResponseWriter, r *http.Request) {
	posts, err := h.contentService.ListWall(r.Context())
	if err != nil {
		httputil.WriteServiceError(w, h.log, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, posts)
}
