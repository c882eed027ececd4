package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mural/internal/httputil"
	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/service"
	"mural/internal/transport/http/middleware"
)

type ReactionHandler struct {
	reactionService *service.ReactionService
}

func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
	}
}

// React handles POST /react (and its POST /post/react alias)
// Appends a reaction to exactly one post or comment.
func (h *ReactionHandler) React(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.reactionService.React(r.Context(), identity.UserID, req); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidReactionType):
			httputil.WriteBadRequest(w, "Invalid reaction type")
		case errors.Is(err, model.ErrInvalidTarget):
			httputil.WriteBadRequest(w, "Provide exactly one of postId or commentId")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		default:
			logger.S.Errorw("react handler", "user", identity.UserID, "error", err)
			httputil.WriteInternalError(w, "Failed to add reaction")
		}
		return
	}

	httputil.WriteCreated(w, "Reaction added", nil)
}

// Unreact handles DELETE /react
// Removes one reaction matched by target and kind.
func (h *ReactionHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.reactionService.Unreact(r.Context(), identity.UserID, req); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidReactionType):
			httputil.WriteBadRequest(w, "Invalid reaction type")
		case errors.Is(err, model.ErrInvalidTarget):
			httputil.WriteBadRequest(w, "Provide exactly one of postId or commentId")
		case errors.Is(err, model.ErrReactionNotFound):
			httputil.WriteNotFound(w, "No such reaction")
		default:
			logger.S.Errorw("unreact handler", "user", identity.UserID, "error", err)
			httputil.WriteInternalError(w, "Failed to remove reaction")
		}
		return
	}

	httputil.WriteSuccess(w, "Reaction removed", nil)
}
