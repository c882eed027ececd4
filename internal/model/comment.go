package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post. A comment whose ParentID is nil
// is top-level; one with a parent is a reply and never appears in the
// top-level listing of its post. Threading is one level deep.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"-"`
	ParentID  *int64    `db:"parent_id" json:"parent_id,omitempty"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	EditedAt  time.Time `db:"edited_at" json:"edited_at"`

	// Joined fields
	Author            *UserSummary         `json:"author,omitempty"`
	ReplyCount        int                  `json:"reply_count"`
	ReactionBreakdown map[ReactionType]int `json:"reaction_breakdown"`
	ViewerReactions   []ReactionType       `json:"viewer_reactions"`
}

// CreateCommentRequest creates a top-level comment (PostID only) or a
// reply (PostID + ParentID).
type CreateCommentRequest struct {
	PostID   int64  `json:"postId"`
	ParentID *int64 `json:"commentId,omitempty"`
	Content  string `json:"content"`
}

// UpdateCommentRequest edits an own comment.
type UpdateCommentRequest struct {
	CommentID int64  `json:"commentId"`
	Content   string `json:"content"`
}

const MaxCommentLength = 2200

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrNotCommentOwner        = errors.New("not the owner of this comment")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrCommentContentTooLong  = errors.New("comment content too long")
)
