package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"thewall/internal/httputil"
	"thewall/internal/service"
)

type PostHandler struct {
	contentService *service.ContentService
	log            zerolog.Logger
}

func NewPostHandler(contentService *service.ContentService, log zerolog.Logger) *PostHandler {
	return &PostHandler{contentService: contentService, log: log}
}

// Create handles POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	post, err := h.contentService.CreatePost(r.Context(), userID, content)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, post)
}

// GetByID handles GET /posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	post, err := h.contentService.GetPost(r.Context(), postID)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("post_id", postID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, post)
}

// Update handles PUT /posts/{id}
// Only the author can edit a post.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	post, err := h.contentService.UpdatePost(r.Context(), userID, postID, content)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("post_id", postID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
// Removes the post with all its comments and replies.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	if err := h.contentService.DeletePost(r.Context(), userID, postID); err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("post_id", postID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}
