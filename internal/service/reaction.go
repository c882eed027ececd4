package service

import (
	"context"
	"fmt"

	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/repository"
)

// ReactionService owns the reaction lifecycle and the per-target
// aggregation used by every listing.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
	}
}

// Aggregate computes, for each target id, the count of reactions broken
// down by kind and the kinds the viewer has personally applied. It issues
// one grouped-count query plus, when a viewer is present, one listing of
// the viewer's own rows, then joins both back onto the id list in memory.
// Targets without reactions get an empty non-nil breakdown. Zero targets
// short-circuits without touching the store. Any query failure aborts the
// whole aggregation; no partial result is returned.
func (s *ReactionService) Aggregate(ctx context.Context, target model.TargetKind, targetIDs []int64, viewerID *int64) (map[int64]model.ReactionSummary, error) {
	result := make(map[int64]model.ReactionSummary, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	counts, err := s.reactionRepo.CountByTarget(ctx, target, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate reactions: %w", err)
	}

	viewer := map[int64][]model.ReactionType{}
	if viewerID != nil {
		viewer, err = s.reactionRepo.ViewerReactions(ctx, *viewerID, target, targetIDs)
		if err != nil {
			return nil, fmt.Errorf("aggregate viewer reactions: %w", err)
		}
	}

	for _, id := range targetIDs {
		summary := model.ReactionSummary{
			Breakdown: counts[id],
			Viewer:    viewer[id],
		}
		if summary.Breakdown == nil {
			summary.Breakdown = map[model.ReactionType]int{}
		}
		if summary.Viewer == nil {
			summary.Viewer = []model.ReactionType{}
		}
		result[id] = summary
	}
	return result, nil
}

// React appends a reaction for the user. The insert is deliberately
// unconditional: duplicate (user, target, kind) rows are accepted, the
// client gates re-reacting on its side.
func (s *ReactionService) React(ctx context.Context, userID int64, req model.ReactRequest) error {
	if err := s.validateTarget(ctx, req); err != nil {
		return err
	}

	reaction := &model.Reaction{
		UserID:    userID,
		Type:      req.ReactionType,
		PostID:    req.PostID,
		CommentID: req.CommentID,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		return err
	}

	logger.S.Infow("reaction added", "user", userID, "type", req.ReactionType,
		"post", req.PostID, "comment", req.CommentID)
	return nil
}

// Unreact removes one matching reaction; a reaction that was never added
// fails with ErrReactionNotFound, never a silent success.
func (s *ReactionService) Unreact(ctx context.Context, userID int64, req model.ReactRequest) error {
	if !req.ReactionType.Valid() {
		return model.ErrInvalidReactionType
	}
	if (req.PostID == nil) == (req.CommentID == nil) {
		return model.ErrInvalidTarget
	}

	target, targetID := model.TargetPost, int64(0)
	if req.PostID != nil {
		targetID = *req.PostID
	} else {
		target, targetID = model.TargetComment, *req.CommentID
	}

	return s.reactionRepo.Delete(ctx, userID, target, targetID, req.ReactionType)
}

// validateTarget enforces the exactly-one-target invariant and verifies
// the target row exists before appending.
func (s *ReactionService) validateTarget(ctx context.Context, req model.ReactRequest) error {
	if !req.ReactionType.Valid() {
		return model.ErrInvalidReactionType
	}
	if (req.PostID == nil) == (req.CommentID == nil) {
		return model.ErrInvalidTarget
	}

	if req.PostID != nil {
		exists, err := s.postRepo.Exists(ctx, *req.PostID)
		if err != nil {
			return fmt.Errorf("check post exists: %w", err)
		}
		if !exists {
			return model.ErrPostNotFound
		}
		return nil
	}

	exists, err := s.commentRepo.Exists(ctx, *req.CommentID)
	if err != nil {
		return fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return model.ErrCommentNotFound
	}
	return nil
}
