package model

import (
	"errors"
	"time"
)

// ReactionType is the fixed emoji set.
type ReactionType string

const (
	ReactionLike  ReactionType = "LIKE"
	ReactionLove  ReactionType = "LOVE"
	ReactionHaha  ReactionType = "HAHA"
	ReactionSad   ReactionType = "SAD"
	ReactionAngry ReactionType = "ANGRY"
)

// ReactionTypes lists every valid reaction kind.
var ReactionTypes = []ReactionType{ReactionLike, ReactionLove, ReactionHaha, ReactionSad, ReactionAngry}

// Valid reports whether t is one of the fixed kinds.
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// TargetKind selects which entity a reaction or aggregation refers to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Reaction targets exactly one of PostID or CommentID, never both and
// never neither.
type Reaction struct {
	ID        int64        `db:"id" json:"id"`
	UserID    int64        `db:"user_id" json:"user_id"`
	Type      ReactionType `db:"type" json:"type"`
	PostID    *int64       `db:"post_id" json:"post_id,omitempty"`
	CommentID *int64       `db:"comment_id" json:"comment_id,omitempty"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// ReactionSummary is the aggregator output for one target: counts per
// kind across all users, plus the kinds the viewer personally applied.
// Breakdown is always non-nil; Viewer is empty without a viewer.
type ReactionSummary struct {
	Breakdown map[ReactionType]int `json:"reaction_breakdown"`
	Viewer    []ReactionType       `json:"viewer_reactions"`
}

// ReactRequest adds or removes a reaction. Exactly one of PostID or
// CommentID must be set.
type ReactRequest struct {
	PostID       *int64       `json:"postId,omitempty"`
	CommentID    *int64       `json:"commentId,omitempty"`
	ReactionType ReactionType `json:"reactionType"`
}

var (
	ErrReactionNotFound    = errors.New("no such reaction")
	ErrInvalidReactionType = errors.New("invalid reaction type")
	ErrInvalidTarget       = errors.New("reaction must target exactly one of a post or a comment")
)
