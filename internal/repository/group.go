// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context, limit, offset int) ([]models.Group, error)
	Delete(ctx context.Context, id uint) error
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

// Delete removes a group. Posts referencing it keep existing with their
// group reference cleared: the group is referenced, never owned.
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	// Clearing group_id rewrites posts that may sit on the cached home feed.
	cache.InvalidateHomeFeed(ctx)
	return nil
}
