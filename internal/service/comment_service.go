package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
)

const maxCommentTextLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthenticatedError("Login required to comment")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	// The post must still exist; commenting on a deleted post is a 404.
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}
