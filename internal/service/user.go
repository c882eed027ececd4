package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mural/internal/logger"
	"mural/internal/model"
	"mural/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// UserService owns accounts: registration, credential checks, profiles
// and the profile picture.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	media      *MediaService
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, media *MediaService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		media:      media,
	}
}

// Register creates an account and returns its identity ready to be
// minted into a session.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.Identity, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordHashed: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.S.Infow("user registered", "user", user.ID, "username", user.Username)
	return identityOf(user), nil
}

// Login checks credentials. Unknown email and wrong password both come
// back as ErrInvalidCredentials; the caller cannot tell which.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	logger.S.Infow("user logged in", "user", user.ID)
	return identityOf(user), nil
}

// Profile assembles the full profile view for a username: the account,
// its counts, the profile picture row and whether the viewer follows it.
func (s *UserService) Profile(ctx context.Context, username string, viewerID *int64) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	stats, err := s.userRepo.Stats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Stats:    *stats,
	}

	if user.ProfilePicID != nil {
		if pic, err := s.media.GetByID(ctx, *user.ProfilePicID); err == nil {
			profile.ProfilePic = pic
		}
	}

	if viewerID != nil && *viewerID != user.ID {
		following, err := s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = following
	}

	return profile, nil
}

// UpdateProfilePicture stores the normalized picture, points the account
// at it and returns the refreshed identity plus the new media id.
func (s *UserService) UpdateProfilePicture(ctx context.Context, identity *model.Identity, dataURL string) (*model.Identity, int64, error) {
	media, err := s.media.StoreProfilePicture(ctx, identity.UserID, dataURL)
	if err != nil {
		return nil, 0, err
	}

	if err := s.userRepo.SetProfilePic(ctx, identity.UserID, media.ID); err != nil {
		return nil, 0, err
	}

	updated := *identity
	updated.ProfilePicID = &media.ID

	logger.S.Infow("profile picture updated", "user", identity.UserID, "media", media.ID)
	return &updated, media.ID, nil
}

// StatsByEmail returns the profile counts for an email address.
func (s *UserService) StatsByEmail(ctx context.Context, email string) (*model.UserStats, error) {
	return s.userRepo.StatsByEmail(ctx, email)
}

func identityOf(user *model.User) *model.Identity {
	return &model.Identity{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		ProfilePicID: user.ProfilePicID,
	}
}
