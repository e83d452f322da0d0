package service

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/repository"
)

// FeedKind selects which slice of posts a feed request sees.
type FeedKind string

const (
	FeedAll       FeedKind = "all"
	FeedByGroup   FeedKind = "group"
	FeedByAuthor  FeedKind = "author"
	FeedFollowing FeedKind = "following"
)

const (
	// DefaultPageSize is the page size used when the client does not ask
	// for one.
	DefaultPageSize = 10
	// MaxPageSize caps client-requested page sizes.
	MaxPageSize = 100
)

type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// FeedQuery describes one feed request after transport decoding.
type FeedQuery struct {
	Kind        FeedKind
	Slug        string
	Username    string
	RequesterID uint
	Page        int
	Size        int
}

// FeedPage is one window of a feed. TotalPages is never below one, so
// an empty feed still renders as a single empty page.
type FeedPage struct {
	Posts      []*models.Post `json:"posts"`
	Number     int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// normalizeSize coerces a client-requested page size into the allowed
// range. Zero and negative sizes mean "use the default".
func normalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// totalPages computes the page count for a feed of n posts. A feed with
// no posts still has one (empty) page.
func totalPages(n int64, size int) int {
	if n <= 0 {
		return 1
	}
	pages := int((n + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// clampPage maps any requested page number onto an existing page.
// Out-of-range requests never error: below one snaps to the first page,
// past the end snaps to the last.
func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// GetFeed resolves a feed request to one page of posts. The home feed's
// first page at the default size is served through the cache; every
// other window goes straight to the database.
func (s *FeedService) GetFeed(ctx context.Context, q FeedQuery) (*FeedPage, error) {
	size := normalizeSize(q.Size)

	count, list, err := s.resolveScope(ctx, q)
	if err != nil {
		return nil, err
	}

	if q.Kind == FeedAll && q.Page <= 1 && size == DefaultPageSize {
		var page FeedPage
		err := cache.Aside(ctx, cache.HomeFeedKey, &page, cache.HomeFeedTTL(), func() error {
			fresh, fetchErr := s.fetchPage(ctx, count, list, 1, size)
			if fetchErr != nil {
				return fetchErr
			}
			page = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	return s.fetchPage(ctx, count, list, q.Page, size)
}

type countFunc func(ctx context.Context) (int64, error)
type listFunc func(ctx context.Context, limit, offset int) ([]*models.Post, error)

// resolveScope validates the query's subject and returns the count and
// list functions for its slice of posts. Unknown groups and authors are
// surfaced here, before any pagination math runs.
func (s *FeedService) resolveScope(ctx context.Context, q FeedQuery) (countFunc, listFunc, error) {
	switch q.Kind {
	case FeedAll:
		return s.postRepo.Count, s.postRepo.List, nil

	case FeedByGroup:
		group, err := s.groupRepo.GetBySlug(ctx, q.Slug)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context) (int64, error) {
				return s.postRepo.CountByGroup(ctx, group.ID)
			}, func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
			}, nil

	case FeedByAuthor:
		author, err := s.userRepo.GetByUsername(ctx, q.Username)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context) (int64, error) {
				return s.postRepo.CountByAuthor(ctx, author.ID)
			}, func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
			}, nil

	case FeedFollowing:
		if q.RequesterID == 0 {
			return nil, nil, models.NewUnauthenticatedError("Login required to view your followed feed")
		}
		authorIDs, err := s.followRepo.AuthorIDs(ctx, q.RequesterID)
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context) (int64, error) {
				return s.postRepo.CountByAuthors(ctx, authorIDs)
			}, func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
			}, nil

	default:
		return nil, nil, models.NewValidationError("Unknown feed kind")
	}
}

func (s *FeedService) fetchPage(ctx context.Context, count countFunc, list listFunc, page, size int) (*FeedPage, error) {
	n, err := count(ctx)
	if err != nil {
		return nil, err
	}

	pages := totalPages(n, size)
	number := clampPage(page, pages)
	offset := (number - 1) * size

	posts, err := list(ctx, size, offset)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &FeedPage{
		Posts:      posts,
		Number:     number,
		Size:       size,
		TotalPages: pages,
		TotalCount: n,
	}, nil
}
