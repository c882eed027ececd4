package service

import (
	"context"
	"strings"

	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/repository"
	"mural/internal/sanitize"
)

// CommentService owns the two comment listings (a post's top level, a
// comment's replies) and the comment mutations.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	reactions   *ReactionService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	reactions *ReactionService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		reactions:   reactions,
	}
}

// ListForPost returns one page of a post's top-level comments.
func (s *CommentService) ListForPost(ctx context.Context, postID int64, page int, viewerID *int64) ([]model.Comment, error) {
	if page < 0 {
		page = 0
	}
	comments, err := s.commentRepo.ListTopLevel(ctx, postID, model.PageSize, page*model.PageSize)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, comments, viewerID)
}

// ListReplies returns one page of a comment's direct replies.
func (s *CommentService) ListReplies(ctx context.Context, parentID int64, page int, viewerID *int64) ([]model.Comment, error) {
	if page < 0 {
		page = 0
	}
	comments, err := s.commentRepo.ListReplies(ctx, parentID, model.PageSize, page*model.PageSize)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, comments, viewerID)
}

// Create adds a top-level comment or, when ParentID is set, a reply. The
// parent must exist and belong to the same post.
func (s *CommentService) Create(ctx context.Context, userID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	content, err := validateCommentContent(req.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != req.PostID {
			return nil, model.ErrCommentNotFound
		}
	}

	comment, err := s.commentRepo.Create(ctx, req.PostID, userID, req.ParentID, content)
	if err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		comment.Author = &model.UserSummary{
			ID:           author.ID,
			Username:     author.Username,
			ProfilePicID: author.ProfilePicID,
		}
	}
	comment.ReactionBreakdown = map[model.ReactionType]int{}
	comment.ViewerReactions = []model.ReactionType{}

	logger.S.Infow("comment created", "user", userID, "post", req.PostID, "comment", comment.ID)
	return comment, nil
}

// Update edits an own comment.
func (s *CommentService) Update(ctx context.Context, userID int64, req model.UpdateCommentRequest) error {
	content, err := validateCommentContent(req.Content)
	if err != nil {
		return err
	}
	if err := s.commentRepo.Update(ctx, req.CommentID, userID, content); err != nil {
		return err
	}
	logger.S.Infow("comment updated", "user", userID, "comment", req.CommentID)
	return nil
}

// Delete removes an own comment.
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	if err := s.commentRepo.Delete(ctx, commentID, userID); err != nil {
		return err
	}
	logger.S.Infow("comment deleted", "user", userID, "comment", commentID)
	return nil
}

func (s *CommentService) enrich(ctx context.Context, comments []model.Comment, viewerID *int64) ([]model.Comment, error) {
	if len(comments) == 0 {
		return []model.Comment{}, nil
	}

	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	summaries, err := s.reactions.Aggregate(ctx, model.TargetComment, ids, viewerID)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		summary := summaries[comments[i].ID]
		comments[i].ReactionBreakdown = summary.Breakdown
		comments[i].ViewerReactions = summary.Viewer
	}
	return comments, nil
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(sanitize.UserContent(content))
	if content == "" {
		return "", model.ErrCommentContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return "", model.ErrCommentContentTooLong
	}
	return content, nil
}
