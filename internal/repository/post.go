package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mural/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new published post. Media fan-out happens in the same
// transaction via the media repository.
func (r *postRepository) Create(ctx context.Context, tx *sqlx.Tx, userID int64, title, content string) (*model.Post, error) {
	query := `
		INSERT INTO posts (user_id, title, content, status, created_at, edited_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_id, title, content, status, created_at, edited_at
	`
	var post model.Post
	err := tx.GetContext(ctx, &post, query, userID, title, content, model.PostStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

// Update edits title and content. Ownership is part of the WHERE clause so
// check and act are a single atomic statement; on zero rows an EXISTS
// probe distinguishes "not owner" from "not found".
func (r *postRepository) Update(ctx context.Context, tx *sqlx.Tx, postID, userID int64, title, content string) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE posts SET title = $1, content = $2, edited_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, title, content, postID, userID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		_ = tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
		if exists {
			return model.ErrNotPostOwner
		}
		return model.ErrPostNotFound
	}
	return nil
}

// Delete removes an own post. Join rows, comments and reactions cascade.
func (r *postRepository) Delete(ctx context.Context, postID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		_ = r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
		if exists {
			return model.ErrNotPostOwner
		}
		return model.ErrPostNotFound
	}
	return nil
}

type postRow struct {
	ID             int64            `db:"id"`
	UserID         int64            `db:"user_id"`
	Title          string           `db:"title"`
	Content        string           `db:"content"`
	Status         model.PostStatus `db:"status"`
	CreatedAt      time.Time        `db:"created_at"`
	EditedAt       time.Time        `db:"edited_at"`
	AuthorUsername string           `db:"author_username"`
	AuthorPicID    *int64           `db:"author_pic_id"`
	CommentCount   int              `db:"comment_count"`
}

func (row postRow) toPost() model.Post {
	return model.Post{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		EditedAt:  row.EditedAt,
		Author: &model.UserSummary{
			ID:           row.UserID,
			Username:     row.AuthorUsername,
			ProfilePicID: row.AuthorPicID,
		},
		CommentCount: row.CommentCount,
	}
}

// List returns a page of published posts newest-first (descending id),
// optionally scoped to one user's posts.
func (r *postRepository) List(ctx context.Context, username string, limit, offset int) ([]model.Post, error) {
	var query string
	var args []interface{}

	if username == "" {
		query = `
			SELECT p.id, p.user_id, p.title, p.content, p.status, p.created_at, p.edited_at,
			       u.username AS author_username, u.profile_pic_id AS author_pic_id,
			       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.parent_id IS NULL) AS comment_count
			FROM posts p
			JOIN users u ON u.id = p.user_id
			WHERE p.status = $1
			ORDER BY p.id DESC
			LIMIT $2 OFFSET $3
		`
		args = []interface{}{model.PostStatusPublished, limit, offset}
	} else {
		query = `
			SELECT p.id, p.user_id, p.title, p.content, p.status, p.created_at, p.edited_at,
			       u.username AS author_username, u.profile_pic_id AS author_pic_id,
			       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.parent_id IS NULL) AS comment_count
			FROM posts p
			JOIN users u ON u.id = p.user_id
			WHERE p.status = $1 AND u.username = $2
			ORDER BY p.id DESC
			LIMIT $3 OFFSET $4
		`
		args = []interface{}{model.PostStatusPublished, username, limit, offset}
	}

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// ListByEmail returns all of a user's posts newest-first for the profile
// posts view.
func (r *postRepository) ListByEmail(ctx context.Context, email string) ([]model.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.title, p.content, p.status, p.created_at, p.edited_at,
		       u.username AS author_username, u.profile_pic_id AS author_pic_id,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.parent_id IS NULL) AS comment_count
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE u.email = $1
		ORDER BY p.id DESC
	`
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, email); err != nil {
		return nil, fmt.Errorf("list posts by email: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}
