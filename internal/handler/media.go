package handler

import (
	"errors"
	"net/http"
	"strconv"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// Get handles GET /media?id=
// Returns one media row, blob included.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid media ID")
		return
	}

	media, err := h.mediaService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMediaNotFound) {
			httputil.WriteNotFound(w, "Media not found")
			return
		}
		logger.S.Errorw("get media handler", "media", id, "error", err)
		httputil.WriteInternalError(w, "Failed to load media")
		return
	}

	httputil.WriteSuccess(w, "", media)
}

// Gallery handles GET /media/galery?username=
// Lists everything a user has uploaded, newest first. The route keeps
// the spelling clients already depend on.
func (h *MediaHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}

	media, err := h.mediaService.Gallery(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		logger.S.Errorw("gallery handler", "username", username, "error", err)
		httputil.WriteInternalError(w, "Failed to load gallery")
		return
	}

	httputil.WriteSuccess(w, "", media)
}
