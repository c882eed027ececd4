package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/service"
	"mural/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List handles GET /comment?postId=|commentId=&page=
// Exactly one of postId (a post's top-level comments) or commentId (a
// comment's replies) must be supplied; both or neither is a 400.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postIDStr := r.URL.Query().Get("postId")
	commentIDStr := r.URL.Query().Get("commentId")
	if (postIDStr == "") == (commentIDStr == "") {
		httputil.WriteBadRequest(w, "Provide exactly one of postId or commentId")
		return
	}

	page := pageParam(r)

	var viewerID *int64
	if identity, ok := middleware.GetIdentityFromContext(r.Context()); ok {
		viewerID = &identity.UserID
	}

	var (
		comments []model.Comment
		err      error
	)
	if postIDStr != "" {
		postID, parseErr := strconv.ParseInt(postIDStr, 10, 64)
		if parseErr != nil {
			httputil.WriteBadRequest(w, "Invalid post ID")
			return
		}
		comments, err = h.commentService.ListForPost(r.Context(), postID, page, viewerID)
	} else {
		commentID, parseErr := strconv.ParseInt(commentIDStr, 10, 64)
		if parseErr != nil {
			httputil.WriteBadRequest(w, "Invalid comment ID")
			return
		}
		comments, err = h.commentService.ListReplies(r.Context(), commentID, page, viewerID)
	}
	if err != nil {
		logger.S.Errorw("list comments handler", "error", err)
		httputil.WriteInternalError(w, "Failed to load comments")
		return
	}

	httputil.WriteSuccess(w, "", comments)
}

// Create handles POST /comment
// Adds a top-level comment, or a reply when commentId names a parent.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrCommentContentTooLong):
			httputil.WriteBadRequest(w, "Comment too long")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		default:
			logger.S.Errorw("create comment handler", "user", identity.UserID, "post", req.PostID, "error", err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteCreated(w, "Comment created successfully", comment)
}

// Update handles PUT /comment
// Edits an own comment.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.commentService.Update(r.Context(), identity.UserID, req); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrCommentContentTooLong):
			httputil.WriteBadRequest(w, "Comment too long")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only edit your own comments")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		default:
			logger.S.Errorw("update comment handler", "user", identity.UserID, "comment", req.CommentID, "error", err)
			httputil.WriteInternalError(w, "Failed to update comment")
		}
		return
	}

	httputil.WriteSuccess(w, "Comment updated successfully", nil)
}

// Delete handles DELETE /comment?id=
// Deletes an own comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(r.Context(), identity.UserID, commentID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only delete your own comments")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		default:
			logger.S.Errorw("delete comment handler", "user", identity.UserID, "comment", commentID, "error", err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteSuccess(w, "Comment deleted successfully", nil)
}
