package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// Profile is a user page as seen by a requester.
type Profile struct {
	User      *models.User `json:"user"`
	PostCount int64        `json:"post_count"`
	Following bool         `json:"following"`
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, followRepo: followRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// GetProfile loads a user page. Following reports whether requesterID
// follows the profiled author; it is always false for anonymous
// requesters and for the author's own page.
func (s *UserService) GetProfile(ctx context.Context, username string, requesterID uint) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if requesterID != 0 && requesterID != user.ID {
		following, err = s.followRepo.Exists(ctx, requesterID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{User: user, PostCount: count, Following: following}, nil
}
