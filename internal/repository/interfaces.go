package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mural/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetProfilePic(ctx context.Context, userID, mediaID int64) error
	Stats(ctx context.Context, userID int64) (*model.UserStats, error)
	StatsByEmail(ctx context.Context, email string) (*model.UserStats, error)
}

type PostRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, userID int64, title, content string) (*model.Post, error)
	// Update edits title/content with the ownership predicate folded into
	// the statement. Zero rows affected resolves to ErrNotPostOwner or
	// ErrPostNotFound.
	Update(ctx context.Context, tx *sqlx.Tx, postID, userID int64, title, content string) error
	Delete(ctx context.Context, postID, userID int64) error
	// List returns published posts newest-first with author summaries and
	// top-level comment counts; username scopes the listing when non-empty.
	List(ctx context.Context, username string, limit, offset int) ([]model.Post, error)
	ListByEmail(ctx context.Context, email string) ([]model.Post, error)
	Exists(ctx context.Context, postID int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, postID, userID int64, parentID *int64, content string) (*model.Comment, error)
	Update(ctx context.Context, commentID, userID int64, content string) error
	Delete(ctx context.Context, commentID, userID int64) error
	ListTopLevel(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	ListReplies(ctx context.Context, parentID int64, limit, offset int) ([]model.Comment, error)
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	Exists(ctx context.Context, commentID int64) (bool, error)
}

type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, media *model.Media) error
	GetByID(ctx context.Context, id int64) (*model.Media, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Media, error)
	Attach(ctx context.Context, tx *sqlx.Tx, postID, mediaID int64) error
	// DetachExcept removes join rows for the post whose media id is not in
	// keep. The media rows themselves survive; they may back a gallery.
	DetachExcept(ctx context.Context, tx *sqlx.Tx, postID int64, keep []int64) error
	ForPosts(ctx context.Context, postIDs []int64) (map[int64][]model.Media, error)
}

type ReactionRepository interface {
	Create(ctx context.Context, reaction *model.Reaction) error
	// Delete removes one reaction row matched by (user, target, type) and
	// returns ErrReactionNotFound when none exists.
	Delete(ctx context.Context, userID int64, target model.TargetKind, targetID int64, typ model.ReactionType) error
	// CountByTarget is one grouped-count query: target id and kind -> rows.
	CountByTarget(ctx context.Context, target model.TargetKind, targetIDs []int64) (map[int64]map[model.ReactionType]int, error)
	// ViewerReactions lists the viewer's own reactions among the targets.
	ViewerReactions(ctx context.Context, viewerID int64, target model.TargetKind, targetIDs []int64) (map[int64][]model.ReactionType, error)
}

type FollowRepository interface {
	// Create reports whether a new edge was inserted (false: already follows).
	Create(ctx context.Context, followerID, followedID int64) (bool, error)
	// Delete reports whether an edge existed. Unfollowing a user who was
	// never followed is not an error.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
}
