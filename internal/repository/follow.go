// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Remove(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	AuthorIDs(ctx context.Context, userID uint) ([]uint, error)
	Authors(ctx context.Context, userID uint) ([]models.User, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge if absent. ON CONFLICT DO NOTHING keeps the
// operation idempotent under concurrent follow calls on the same pair.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Remove deletes the edge if present; an absent edge is a no-op.
func (r *followRepository) Remove(ctx context.Context, userID, authorID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) AuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	var authorIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &authorIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authorIDs, nil
}

func (r *followRepository) Authors(ctx context.Context, userID uint) ([]models.User, error) {
	var authors []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.author_id").
		Where("f.user_id = ?", userID).
		Order("users.username ASC").
		Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}
