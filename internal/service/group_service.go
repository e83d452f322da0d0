package service

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

const (
	maxGroupTitleLen       = 200
	maxGroupDescriptionLen = 2000
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

type CreateGroupInput struct {
	Title       string
	Slug        string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup registers a new group. When no slug is supplied one is
// derived from the title; either way the slug must be unique.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxGroupTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxGroupDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}

	slug := in.Slug
	if slug == "" {
		slug = validation.Slugify(title)
	}
	if err := validation.ValidateGroupSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.groupRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, models.NewConflictError("A group with this slug already exists")
	} else if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, err
		}
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context, limit, offset int) ([]models.Group, error) {
	return s.groupRepo.List(ctx, limit, offset)
}

// DeleteGroup removes the group; its posts stay, ungrouped.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, group.ID)
}
