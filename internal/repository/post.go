// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// feedOrdering is the default ordering for every post listing: newest
// first, author id as the tie-break. It must hold for every feed kind,
// also after interleaved inserts and deletes.
const feedOrdering = "posts.created_at DESC, posts.user_id ASC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, userID uint) (int64, error)
	ListByAuthors(ctx context.Context, userIDs []uint, limit, offset int) ([]*models.Post, error)
	CountByAuthors(ctx context.Context, userIDs []uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateHomeFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, nil, limit, offset)
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	}, limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

// ListByAuthors returns posts whose author is in userIDs; an empty set of
// authors is a valid empty feed, not a query error.
func (r *postRepository) ListByAuthors(ctx context.Context, userIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(userIDs) == 0 {
		return []*models.Post{}, nil
	}
	return r.listWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN ?", userIDs)
	}, limit, offset)
}

func (r *postRepository) CountByAuthors(ctx context.Context, userIDs []uint) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN ?", userIDs)
	})
}

func (r *postRepository) listWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	db := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group")
	if scope != nil {
		db = scope(db)
	}
	err := db.Order(feedOrdering).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) countWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if scope != nil {
		db = scope(db)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applyPostDetails adds a subquery to fetch the comment count in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateHomeFeed(ctx)
	return nil
}

// Delete removes a post together with its comments: the post owns them.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateHomeFeed(ctx)
	return nil
}
