package model

import (
	"errors"
	"time"
)

// PostStatus mirrors the posts.status column. Only published posts are
// ever listed.
type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
)

// Post represents a user's post with its metadata.
type Post struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	Status    PostStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	EditedAt  time.Time  `db:"edited_at" json:"edited_at"`

	// Joined fields (not in the posts table)
	Author            *UserSummary           `json:"author,omitempty"`
	Media             []Media                `json:"media,omitempty"`
	CommentCount      int                    `json:"comment_count"`
	ReactionBreakdown map[ReactionType]int   `json:"reaction_breakdown"`
	ViewerReactions   []ReactionType         `json:"viewer_reactions"`
}

// CreatePostRequest is the request body for creating a post. Media items
// are base64 data URLs encoded by the client.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Media   []string `json:"media,omitempty"`
}

// UpdatePostRequest edits an existing post. MediaIDs lists the previously
// attached media the client wants to keep; attachments absent from it are
// detached. Media carries newly added blobs.
type UpdatePostRequest struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	MediaIDs []int64  `json:"mediaIds,omitempty"`
	Media    []string `json:"media,omitempty"`
}

const (
	// PageSize is the fixed page size for every listing.
	PageSize = 30

	MaxPostTitleLength   = 300
	MaxPostContentLength = 10000
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotPostOwner    = errors.New("not the owner of this post")
	ErrTitleRequired   = errors.New("post title is required")
	ErrTitleTooLong    = errors.New("post title too long")
	ErrContentTooLong  = errors.New("post content too long")
)
