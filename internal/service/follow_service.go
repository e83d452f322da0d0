package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes userID to the author behind username. Following
// someone twice is the same as following them once.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	if userID == 0 {
		return models.NewUnauthenticatedError("Login required to follow authors")
	}
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return models.NewSelfFollowError()
	}
	return s.followRepo.Create(ctx, &models.Follow{UserID: userID, AuthorID: author.ID})
}

// Unfollow removes the subscription. Unfollowing someone never followed
// succeeds quietly.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	if userID == 0 {
		return models.NewUnauthenticatedError("Login required to unfollow authors")
	}
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Remove(ctx, userID, author.ID)
}

func (s *FollowService) IsFollowing(ctx context.Context, userID uint, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *FollowService) FollowedAuthors(ctx context.Context, userID uint) ([]models.User, error) {
	if userID == 0 {
		return nil, models.NewUnauthenticatedError("Login required to list followed authors")
	}
	return s.followRepo.Authors(ctx, userID)
}
