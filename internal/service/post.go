package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/repository"
	"mural/internal/sanitize"
)

// PostService assembles the feed and owns post mutations including the
// media fan-out.
type PostService struct {
	postRepo  repository.PostRepository
	mediaRepo repository.MediaRepository
	media     *MediaService
	reactions *ReactionService
	db        *sqlx.DB
}

func NewPostService(
	postRepo repository.PostRepository,
	mediaRepo repository.MediaRepository,
	media *MediaService,
	reactions *ReactionService,
	db *sqlx.DB,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		mediaRepo: mediaRepo,
		media:     media,
		reactions: reactions,
		db:        db,
	}
}

// Create inserts the post and fans out one media row plus one join row per
// supplied blob, all in a single transaction.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (*model.Post, error) {
	title, content, err := validatePostInput(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	post, err := s.postRepo.Create(ctx, tx, userID, title, content)
	if err != nil {
		return nil, err
	}

	for i, blob := range req.Media {
		media, err := s.media.StoreImageTx(ctx, tx, userID, blob)
		if err != nil {
			return nil, fmt.Errorf("store media %d: %w", i, err)
		}
		if err := s.mediaRepo.Attach(ctx, tx, post.ID, media.ID); err != nil {
			return nil, err
		}
		post.Media = append(post.Media, *media)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	post.ReactionBreakdown = map[model.ReactionType]int{}
	post.ViewerReactions = []model.ReactionType{}

	logger.S.Infow("post created", "user", userID, "post", post.ID, "media", len(req.Media))
	return post, nil
}

// Update edits an own post. Attachments absent from the request's kept-id
// list are detached (their media rows survive, they may back a gallery);
// newly supplied blobs are inserted and attached. The ownership check
// rides inside the UPDATE statement.
func (s *PostService) Update(ctx context.Context, userID int64, req model.UpdatePostRequest) error {
	title, content, err := validatePostInput(req.Title, req.Content)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.postRepo.Update(ctx, tx, req.ID, userID, title, content); err != nil {
		return err
	}

	if err := s.mediaRepo.DetachExcept(ctx, tx, req.ID, req.MediaIDs); err != nil {
		return err
	}

	for i, blob := range req.Media {
		media, err := s.media.StoreImageTx(ctx, tx, userID, blob)
		if err != nil {
			return fmt.Errorf("store media %d: %w", i, err)
		}
		if err := s.mediaRepo.Attach(ctx, tx, req.ID, media.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	logger.S.Infow("post updated", "user", userID, "post", req.ID)
	return nil
}

// Delete removes an own post; ownership is folded into the DELETE.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	if err := s.postRepo.Delete(ctx, postID, userID); err != nil {
		return err
	}
	logger.S.Infow("post deleted", "user", userID, "post", postID)
	return nil
}

// Feed returns one page of published posts newest-first, optionally scoped
// to a username, each enriched with author, attachments, top-level comment
// count and reaction aggregation for the viewer.
func (s *PostService) Feed(ctx context.Context, username string, page int, viewerID *int64) ([]model.Post, error) {
	if page < 0 {
		page = 0
	}

	posts, err := s.postRepo.List(ctx, username, model.PageSize, page*model.PageSize)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, posts, viewerID)
}

// PostsByEmail lists a user's posts for the profile view.
func (s *PostService) PostsByEmail(ctx context.Context, email string) ([]model.Post, error) {
	posts, err := s.postRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts, nil)
}

func (s *PostService) enrich(ctx context.Context, posts []model.Post, viewerID *int64) ([]model.Post, error) {
	if len(posts) == 0 {
		return []model.Post{}, nil
	}

	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	mediaMap, err := s.mediaRepo.ForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries, err := s.reactions.Aggregate(ctx, model.TargetPost, ids, viewerID)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Media = mediaMap[posts[i].ID]
		summary := summaries[posts[i].ID]
		posts[i].ReactionBreakdown = summary.Breakdown
		posts[i].ViewerReactions = summary.Viewer
	}
	return posts, nil
}

func validatePostInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(sanitize.UserContent(title))
	content = strings.TrimSpace(sanitize.UserContent(content))

	if title == "" {
		return "", "", model.ErrTitleRequired
	}
	if len(title) > model.MaxPostTitleLength {
		return "", "", model.ErrTitleTooLong
	}
	if len(content) > model.MaxPostContentLength {
		return "", "", model.ErrContentTooLong
	}
	return title, content, nil
}
