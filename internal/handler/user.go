package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/service"
	"mural/internal/transport/http/middleware"
)

type UserHandler struct {
	userService   *service.UserService
	postService   *service.PostService
	followService *service.FollowService
	sessions      *service.SessionService
}

func NewUserHandler(
	userService *service.UserService,
	postService *service.PostService,
	followService *service.FollowService,
	sessions *service.SessionService,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		postService:   postService,
		followService: followService,
		sessions:      sessions,
	}
}

// Profile handles GET /user?username=
// Returns the profile with counts and the viewer's follow state.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}

	profile, err := h.userService.Profile(r.Context(), username, &identity.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		logger.S.Errorw("profile handler", "username", username, "error", err)
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	httputil.WriteSuccess(w, "", profile)
}

// UpdateProfilePicture handles PUT /user
// Stores the uploaded picture, points the account at it and re-mints the
// session cookie so the embedded picture reference stays current.
func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	updated, picID, err := h.userService.UpdateProfilePicture(r.Context(), identity, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidImageData):
			httputil.WriteBadRequest(w, "Invalid image data")
		case errors.Is(err, model.ErrImageTooLarge):
			httputil.WriteBadRequest(w, "Image too large")
		default:
			logger.S.Errorw("profile picture handler", "user", identity.UserID, "error", err)
			httputil.WriteInternalError(w, "Failed to update profile picture")
		}
		return
	}

	token, err := h.sessions.Mint(updated)
	if err != nil {
		logger.S.Errorw("profile picture handler: mint session", "user", identity.UserID, "error", err)
		httputil.WriteInternalError(w, "Failed to update profile picture")
		return
	}
	setSessionCookie(w, token, h.sessions.MaxAge())

	httputil.WriteSuccess(w, "Profile picture updated", map[string]int64{"picId": picID})
}

// Follow handles POST /user/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.editFollow(w, r, h.followService.Follow, "Followed successfully", "Failed to follow")
}

// Unfollow handles POST /user/unfollow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.editFollow(w, r, h.followService.Unfollow, "Unfollowed successfully", "Failed to unfollow")
}

func (h *UserHandler) editFollow(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, followerID int64, username string) error,
	successMsg, failMsg string,
) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}

	if err := op(r.Context(), identity.UserID, req.Username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		logger.S.Errorw("follow handler", "user", identity.UserID, "target", req.Username, "error", err)
		httputil.WriteInternalError(w, failMsg)
		return
	}

	httputil.WriteSuccess(w, successMsg, nil)
}

// PostsByEmail handles GET /user/{email}/posts
// Lists a user's posts for the profile view.
func (h *UserHandler) PostsByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	posts, err := h.postService.PostsByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		logger.S.Errorw("user posts handler", "email", email, "error", err)
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	httputil.WriteSuccess(w, "", posts)
}

// Stats handles GET /user/{email}/stats
// Returns the bare count block for a user.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	stats, err := h.userService.StatsByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		logger.S.Errorw("user stats handler", "email", email, "error", err)
		httputil.WriteInternalError(w, "Failed to load stats")
		return
	}

	httputil.WriteSuccess(w, "", stats)
}
