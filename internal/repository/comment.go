package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mural/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, postID, userID int64, parentID *int64, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, parent_id, content, created_at, edited_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, post_id, user_id, parent_id, content, created_at, edited_at
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, postID, userID, parentID, content)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

// Update edits an own comment; the ownership predicate rides in the WHERE
// clause. Zero rows affected resolves to "not owner" or "not found" via a
// follow-up EXISTS probe.
func (r *commentRepository) Update(ctx context.Context, commentID, userID int64, content string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE comments SET content = $1, edited_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, content, commentID, userID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return r.resolveZeroRows(ctx, result, commentID)
}

// Delete removes an own comment. Replies cascade at the database level.
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return r.resolveZeroRows(ctx, result, commentID)
}

func (r *commentRepository) resolveZeroRows(ctx context.Context, result sql.Result, commentID int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		_ = r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, commentID)
		if exists {
			return model.ErrNotCommentOwner
		}
		return model.ErrCommentNotFound
	}
	return nil
}

type commentRow struct {
	ID             int64     `db:"id"`
	PostID         int64     `db:"post_id"`
	UserID         int64     `db:"user_id"`
	ParentID       *int64    `db:"parent_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
	EditedAt       time.Time `db:"edited_at"`
	AuthorUsername string    `db:"author_username"`
	AuthorPicID    *int64    `db:"author_pic_id"`
	ReplyCount     int       `db:"reply_count"`
}

func (row commentRow) toComment() model.Comment {
	return model.Comment{
		ID:        row.ID,
		PostID:    row.PostID,
		UserID:    row.UserID,
		ParentID:  row.ParentID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		EditedAt:  row.EditedAt,
		Author: &model.UserSummary{
			ID:           row.UserID,
			Username:     row.AuthorUsername,
			ProfilePicID: row.AuthorPicID,
		},
		ReplyCount: row.ReplyCount,
	}
}

const commentListColumns = `
	c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, c.edited_at,
	u.username AS author_username, u.profile_pic_id AS author_pic_id,
	(SELECT COUNT(*) FROM comments r WHERE r.parent_id = c.id) AS reply_count
`

// ListTopLevel returns a page of a post's top-level comments newest-first.
// Replies are excluded by the parent IS NULL filter.
func (r *commentRepository) ListTopLevel(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	query := `
		SELECT ` + commentListColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, postID, limit, offset)
}

// ListReplies returns a page of a comment's direct replies newest-first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, limit, offset int) ([]model.Comment, error) {
	query := `
		SELECT ` + commentListColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, parentID, limit, offset)
}

func (r *commentRepository) list(ctx context.Context, query string, scopeID int64, limit, offset int) ([]model.Comment, error) {
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, scopeID, limit, offset); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT id, post_id, user_id, parent_id, content, created_at, edited_at
		FROM comments
		WHERE id = $1
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, commentID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, commentID)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}
