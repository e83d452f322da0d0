package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
)

const maxPostTextLen = 50000

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	UserID    uint
	Text      string
	ImageURL  string
	GroupSlug string
}

type UpdatePostInput struct {
	UserID    uint
	PostID    uint
	Text      string
	ImageURL  string
	GroupSlug string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Login required to publish a post")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
		GroupID:  groupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost rewrites a post's content. Only the author may touch it;
// everyone else gets a forbidden error even when the payload is valid.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Login required to edit a post")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.ImageURL = in.ImageURL
	post.GroupID = groupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if in.UserID == 0 {
		return models.NewUnauthenticatedError("Login required to delete a post")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("Only the author can delete this post")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// resolveGroup maps an optional group slug to its id. An empty slug
// means the post stays ungrouped.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	id := group.ID
	return &id, nil
}
