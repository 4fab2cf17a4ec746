package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"thewall/internal/httputil"
	"thewall/internal/service"
)

type CommentHandler struct {
	contentService *service.ContentService
	log            zerolog.Logger
}

func NewCommentHandler(contentService *service.ContentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{contentService: contentService, log: log}
}

// Create handles POST /posts/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.contentService.CreateComment(r.Context(), userID, postID, content)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("post_id", postID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, comment)
}

// Reply handles POST /comments/{id}/replies
func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	parentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	reply, err := h.contentService.CreateReply(r.Context(), userID, parentID, content)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("parent_comment_id", parentID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, reply)
}

// GetByID handles GET /comments/{id}
func (h *CommentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	comment, err := h.contentService.GetComment(r.Context(), commentID)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("comment_id", commentID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, comment)
}

// Update handles PUT /comments/{id}
// Only the author can edit a comment or reply.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	comment, err := h.contentService.UpdateComment(r.Context(), userID, commentID, content)
	if err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("comment_id", commentID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}
// Deleting a top-level comment also removes its replies.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	if err := h.contentService.DeleteComment(r.Context(), userID, commentID); err != nil {
		httputil.WriteServiceError(w, h.log.With().Int64("user_id", userID).Int64("comment_id", commentID).Logger(), err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]string{
		"message": "Comment deleted successfully",
	})
}
