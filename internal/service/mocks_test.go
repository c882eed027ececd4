package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mural/internal/model"
)

// Function-field mocks for the repository interfaces. Each test fills in
// only the calls it expects; an unexpected call panics on the nil field.

type mockUserRepo struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	setProfilePicFn func(ctx context.Context, userID, mediaID int64) error
	statsFn         func(ctx context.Context, userID int64) (*model.UserStats, error)
	statsByEmailFn  func(ctx context.Context, email string) (*model.UserStats, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.getByUsernameFn(ctx, username)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) SetProfilePic(ctx context.Context, userID, mediaID int64) error {
	return m.setProfilePicFn(ctx, userID, mediaID)
}
func (m *mockUserRepo) Stats(ctx context.Context, userID int64) (*model.UserStats, error) {
	return m.statsFn(ctx, userID)
}
func (m *mockUserRepo) StatsByEmail(ctx context.Context, email string) (*model.UserStats, error) {
	return m.statsByEmailFn(ctx, email)
}

type mockPostRepo struct {
	createFn      func(ctx context.Context, tx *sqlx.Tx, userID int64, title, content string) (*model.Post, error)
	updateFn      func(ctx context.Context, tx *sqlx.Tx, postID, userID int64, title, content string) error
	deleteFn      func(ctx context.Context, postID, userID int64) error
	listFn        func(ctx context.Context, username string, limit, offset int) ([]model.Post, error)
	listByEmailFn func(ctx context.Context, email string) ([]model.Post, error)
	existsFn      func(ctx context.Context, postID int64) (bool, error)
}

func (m *mockPostRepo) Create(ctx context.Context, tx *sqlx.Tx, userID int64, title, content string) (*model.Post, error) {
	return m.createFn(ctx, tx, userID, title, content)
}
func (m *mockPostRepo) Update(ctx context.Context, tx *sqlx.Tx, postID, userID int64, title, content string) error {
	return m.updateFn(ctx, tx, postID, userID, title, content)
}
func (m *mockPostRepo) Delete(ctx context.Context, postID, userID int64) error {
	return m.deleteFn(ctx, postID, userID)
}
func (m *mockPostRepo) List(ctx context.Context, username string, limit, offset int) ([]model.Post, error) {
	return m.listFn(ctx, username, limit, offset)
}
func (m *mockPostRepo) ListByEmail(ctx context.Context, email string) ([]model.Post, error) {
	return m.listByEmailFn(ctx, email)
}
func (m *mockPostRepo) Exists(ctx context.Context, postID int64) (bool, error) {
	return m.existsFn(ctx, postID)
}

type mockCommentRepo struct {
	createFn       func(ctx context.Context, postID, userID int64, parentID *int64, content string) (*model.Comment, error)
	updateFn       func(ctx context.Context, commentID, userID int64, content string) error
	deleteFn       func(ctx context.Context, commentID, userID int64) error
	listTopLevelFn func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	listRepliesFn  func(ctx context.Context, parentID int64, limit, offset int) ([]model.Comment, error)
	getByIDFn      func(ctx context.Context, commentID int64) (*model.Comment, error)
	existsFn       func(ctx context.Context, commentID int64) (bool, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, postID, userID int64, parentID *int64, content string) (*model.Comment, error) {
	return m.createFn(ctx, postID, userID, parentID, content)
}
func (m *mockCommentRepo) Update(ctx context.Context, commentID, userID int64, content string) error {
	return m.updateFn(ctx, commentID, userID, content)
}
func (m *mockCommentRepo) Delete(ctx context.Context, commentID, userID int64) error {
	return m.deleteFn(ctx, commentID, userID)
}
func (m *mockCommentRepo) ListTopLevel(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	return m.listTopLevelFn(ctx, postID, limit, offset)
}
func (m *mockCommentRepo) ListReplies(ctx context.Context, parentID int64, limit, offset int) ([]model.Comment, error) {
	return m.listRepliesFn(ctx, parentID, limit, offset)
}
func (m *mockCommentRepo) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	return m.getByIDFn(ctx, commentID)
}
func (m *mockCommentRepo) Exists(ctx context.Context, commentID int64) (bool, error) {
	return m.existsFn(ctx, commentID)
}

type mockMediaRepo struct {
	createFn       func(ctx context.Context, media *model.Media) error
	createTxFn     func(ctx context.Context, tx *sqlx.Tx, media *model.Media) error
	getByIDFn      func(ctx context.Context, id int64) (*model.Media, error)
	listByUserFn   func(ctx context.Context, userID int64) ([]model.Media, error)
	attachFn       func(ctx context.Context, tx *sqlx.Tx, postID, mediaID int64) error
	detachExceptFn func(ctx context.Context, tx *sqlx.Tx, postID int64, keep []int64) error
	forPostsFn     func(ctx context.Context, postIDs []int64) (map[int64][]model.Media, error)
}

func (m *mockMediaRepo) Create(ctx context.Context, media *model.Media) error {
	return m.createFn(ctx, media)
}
func (m *mockMediaRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, media *model.Media) error {
	return m.createTxFn(ctx, tx, media)
}
func (m *mockMediaRepo) GetByID(ctx context.Context, id int64) (*model.Media, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockMediaRepo) ListByUser(ctx context.Context, userID int64) ([]model.Media, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockMediaRepo) Attach(ctx context.Context, tx *sqlx.Tx, postID, mediaID int64) error {
	return m.attachFn(ctx, tx, postID, mediaID)
}
func (m *mockMediaRepo) DetachExcept(ctx context.Context, tx *sqlx.Tx, postID int64, keep []int64) error {
	return m.detachExceptFn(ctx, tx, postID, keep)
}
func (m *mockMediaRepo) ForPosts(ctx context.Context, postIDs []int64) (map[int64][]model.Media, error) {
	return m.forPostsFn(ctx, postIDs)
}

type mockReactionRepo struct {
	createFn          func(ctx context.Context, reaction *model.Reaction) error
	deleteFn          func(ctx context.Context, userID int64, target model.TargetKind, targetID int64, typ model.ReactionType) error
	countByTargetFn   func(ctx context.Context, target model.TargetKind, targetIDs []int64) (map[int64]map[model.ReactionType]int, error)
	viewerReactionsFn func(ctx context.Context, viewerID int64, target model.TargetKind, targetIDs []int64) (map[int64][]model.ReactionType, error)
}

func (m *mockReactionRepo) Create(ctx context.Context, reaction *model.Reaction) error {
	return m.createFn(ctx, reaction)
}
func (m *mockReactionRepo) Delete(ctx context.Context, userID int64, target model.TargetKind, targetID int64, typ model.ReactionType) error {
	return m.deleteFn(ctx, userID, target, targetID, typ)
}
func (m *mockReactionRepo) CountByTarget(ctx context.Context, target model.TargetKind, targetIDs []int64) (map[int64]map[model.ReactionType]int, error) {
	return m.countByTargetFn(ctx, target, targetIDs)
}
func (m *mockReactionRepo) ViewerReactions(ctx context.Context, viewerID int64, target model.TargetKind, targetIDs []int64) (map[int64][]model.ReactionType, error) {
	return m.viewerReactionsFn(ctx, viewerID, target, targetIDs)
}

type mockFollowRepo struct {
	createFn func(ctx context.Context, followerID, followedID int64) (bool, error)
	deleteFn func(ctx context.Context, followerID, followedID int64) (bool, error)
	existsFn func(ctx context.Context, followerID, followedID int64) (bool, error)
}

func (m *mockFollowRepo) Create(ctx context.Context, followerID, followedID int64) (bool, error) {
	return m.createFn(ctx, followerID, followedID)
}
func (m *mockFollowRepo) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	return m.deleteFn(ctx, followerID, followedID)
}
func (m *mockFollowRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	return m.existsFn(ctx, followerID, followedID)
}
