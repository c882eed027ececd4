package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mural/internal/model"
)

func TestRegister_HashesPassword(t *testing.T) {
	var created *model.User
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 7
			created = user
			return nil
		},
	}

	svc := NewUserService(userRepo, nil, nil)

	identity, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "carol",
		Email:    "Carol@Example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "carol@example.com", identity.Email)

	require.NotNil(t, created)
	assert.NotEqual(t, "hunter2hunter2", created.PasswordHashed)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHashed), []byte("hunter2hunter2")))
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "a@b.c", Password: "longenough"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Username: "carol", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(context.Background(), model.RegisterRequest{Username: "carol", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin_WrongEitherWay(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email != "carol@example.com" {
				return nil, model.ErrUserNotFound
			}
			return &model.User{ID: 7, Username: "carol", Email: email, PasswordHashed: string(hash)}, nil
		},
	}
	svc := NewUserService(userRepo, nil, nil)

	// Unknown email and wrong password produce the same error.
	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "correct-password"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "carol@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	identity, err := svc.Login(context.Background(), model.LoginRequest{Email: "carol@example.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
}

func TestProfile_FollowState(t *testing.T) {
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 9, Username: username, Email: "dan@example.com"}, nil
		},
		statsFn: func(ctx context.Context, userID int64) (*model.UserStats, error) {
			return &model.UserStats{Posts: 3, Followers: 1}, nil
		},
	}
	followRepo := &mockFollowRepo{
		existsFn: func(ctx context.Context, followerID, followedID int64) (bool, error) {
			assert.Equal(t, int64(7), followerID)
			assert.Equal(t, int64(9), followedID)
			return true, nil
		},
	}

	svc := NewUserService(userRepo, followRepo, inlineMediaService(t, &mockMediaRepo{}))

	viewerID := int64(7)
	profile, err := svc.Profile(context.Background(), "dan", &viewerID)
	require.NoError(t, err)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, 3, profile.Stats.Posts)
}

func TestFollow_IdempotentEdges(t *testing.T) {
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username != "dan" {
				return nil, model.ErrUserNotFound
			}
			return &model.User{ID: 9, Username: username}, nil
		},
	}
	followRepo := &mockFollowRepo{
		createFn: func(ctx context.Context, followerID, followedID int64) (bool, error) {
			return false, nil // already following
		},
		deleteFn: func(ctx context.Context, followerID, followedID int64) (bool, error) {
			return false, nil // never followed
		},
	}

	svc := NewFollowService(followRepo, userRepo)

	assert.NoError(t, svc.Follow(context.Background(), 7, "dan"))
	assert.NoError(t, svc.Unfollow(context.Background(), 7, "dan"))

	err := svc.Follow(context.Background(), 7, "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
