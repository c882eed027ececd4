package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mural/internal/model"
)

func TestCommentCreate_Reply(t *testing.T) {
	parentID := int64(11)
	commentRepo := &mockCommentRepo{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			assert.Equal(t, parentID, commentID)
			return &model.Comment{ID: parentID, PostID: 3}, nil
		},
		createFn: func(ctx context.Context, postID, userID int64, pid *int64, content string) (*model.Comment, error) {
			require.NotNil(t, pid)
			return &model.Comment{ID: 12, PostID: postID, UserID: userID, ParentID: pid, Content: content}, nil
		},
	}
	postRepo := &mockPostRepo{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}
	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "carol"}, nil
		},
	}

	svc := NewCommentService(commentRepo, postRepo, userRepo, nil)

	comment, err := svc.Create(context.Background(), 7, model.CreateCommentRequest{
		PostID:   3,
		ParentID: &parentID,
		Content:  "agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), comment.ID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "carol", comment.Author.Username)
	assert.NotNil(t, comment.ReactionBreakdown)
}

func TestCommentCreate_ParentFromAnotherPost(t *testing.T) {
	parentID := int64(11)
	commentRepo := &mockCommentRepo{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: parentID, PostID: 99}, nil
		},
	}
	postRepo := &mockPostRepo{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return true, nil },
	}

	svc := NewCommentService(commentRepo, postRepo, nil, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateCommentRequest{
		PostID:   3,
		ParentID: &parentID,
		Content:  "lost reply",
	})
	assert.ErrorIs(t, err, model.ErrCommentNotFound)
}

func TestCommentCreate_MissingPost(t *testing.T) {
	postRepo := &mockPostRepo{
		existsFn: func(ctx context.Context, postID int64) (bool, error) { return false, nil },
	}

	svc := NewCommentService(&mockCommentRepo{}, postRepo, nil, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateCommentRequest{PostID: 3, Content: "hello"})
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestCommentUpdate_NotOwner(t *testing.T) {
	commentRepo := &mockCommentRepo{
		updateFn: func(ctx context.Context, commentID, userID int64, content string) error {
			return model.ErrNotCommentOwner
		},
	}

	svc := NewCommentService(commentRepo, nil, nil, nil)

	err := svc.Update(context.Background(), 7, model.UpdateCommentRequest{CommentID: 5, Content: "edited"})
	assert.ErrorIs(t, err, model.ErrNotCommentOwner)
}

func TestCommentList_PageOffsets(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listTopLevelFn: func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
			assert.Equal(t, int64(3), postID)
			assert.Equal(t, model.PageSize, limit)
			assert.Equal(t, 2*model.PageSize, offset)
			return []model.Comment{{ID: 61, PostID: 3}}, nil
		},
	}
	reactionRepo := &mockReactionRepo{
		countByTargetFn: func(ctx context.Context, target model.TargetKind, targetIDs []int64) (map[int64]map[model.ReactionType]int, error) {
			assert.Equal(t, model.TargetComment, target)
			return map[int64]map[model.ReactionType]int{}, nil
		},
	}

	svc := NewCommentService(commentRepo, nil, nil, NewReactionService(reactionRepo, nil, nil))

	comments, err := svc.ListForPost(context.Background(), 3, 2, nil)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.NotNil(t, comments[0].ReactionBreakdown)
	assert.NotNil(t, comments[0].ViewerReactions)
}

func TestCommentCreate_ContentValidation(t *testing.T) {
	svc := NewCommentService(&mockCommentRepo{}, &mockPostRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateCommentRequest{PostID: 3, Content: "   "})
	assert.ErrorIs(t, err, model.ErrCommentContentRequired)

	long := make([]byte, model.MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(context.Background(), 7, model.CreateCommentRequest{PostID: 3, Content: string(long)})
	assert.ErrorIs(t, err, model.ErrCommentContentTooLong)
}
