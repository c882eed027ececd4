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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Feed handles GET /post?page=&username=
// Returns one page of published posts, newest first. An authenticated
// viewer additionally gets their own reactions per post.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	username := r.URL.Query().Get("username")

	var viewerID *int64
	if identity, ok := middleware.GetIdentityFromContext(r.Context()); ok {
		viewerID = &identity.UserID
	}

	posts, err := h.postService.Feed(r.Context(), username, page, viewerID)
	if err != nil {
		logger.S.Errorw("feed handler", "page", page, "username", username, "error", err)
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	httputil.WriteSuccess(w, "", posts)
}

// Create handles POST /post
// Creates a post with its inline media for the authenticated user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Title is required")
		case errors.Is(err, model.ErrTitleTooLong):
			httputil.WriteBadRequest(w, "Title too long")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Content too long")
		case errors.Is(err, model.ErrInvalidImageData):
			httputil.WriteBadRequest(w, "Invalid image data")
		case errors.Is(err, model.ErrImageTooLarge):
			httputil.WriteBadRequest(w, "Image too large")
		default:
			logger.S.Errorw("create post handler", "user", identity.UserID, "error", err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteCreated(w, "Post created successfully", post)
}

// Update handles PUT /post
// Edits an own post; attachments not listed in mediaIds are detached and
// new blobs are stored and attached.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.postService.Update(r.Context(), identity.UserID, req); err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Title is required")
		case errors.Is(err, model.ErrTitleTooLong):
			httputil.WriteBadRequest(w, "Title too long")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Content too long")
		case errors.Is(err, model.ErrInvalidImageData):
			httputil.WriteBadRequest(w, "Invalid image data")
		case errors.Is(err, model.ErrImageTooLarge):
			httputil.WriteBadRequest(w, "Image too large")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only edit your own posts")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			logger.S.Errorw("update post handler", "user", identity.UserID, "post", req.ID, "error", err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteSuccess(w, "Post updated successfully", nil)
}

// Delete handles DELETE /post?id=
// Deletes an own post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(r.Context(), identity.UserID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only delete your own posts")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			logger.S.Errorw("delete post handler", "user", identity.UserID, "post", postID, "error", err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteSuccess(w, "Post deleted successfully", nil)
}

// pageParam reads the zero-based page query parameter; absent or
// malformed values fall back to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
