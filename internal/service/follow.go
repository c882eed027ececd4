package service

import (
	"context"

	"mural/internal/logger"
	"mural/internal/repository"
)

// FollowService manages follower edges, addressed by username.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow adds an edge from the viewer to the named user. Following
// someone already followed is a no-op success.
func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) error {
	followed, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	inserted, err := s.followRepo.Create(ctx, followerID, followed.ID)
	if err != nil {
		return err
	}
	if inserted {
		logger.S.Infow("follow added", "follower", followerID, "followed", followed.ID)
	}
	return nil
}

// Unfollow removes the edge if present. Unfollowing a user who was
// never followed succeeds quietly.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) error {
	followed, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	existed, err := s.followRepo.Delete(ctx, followerID, followed.ID)
	if err != nil {
		return err
	}
	if existed {
		logger.S.Infow("follow removed", "follower", followerID, "followed", followed.ID)
	}
	return nil
}
