package server

import (
	"context"
	"testing"

	"quill/internal/config"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListByAuthors(ctx context.Context, userIDs []uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) CountByAuthors(ctx context.Context, userIDs []uint) (int64, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroupRepository is a mock of the GroupRepository interface
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(ctx context.Context, group *models.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, limit, offset)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Remove(ctx context.Context, userID, authorID uint) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) AuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFollowRepository) Authors(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.User), args.Error(1)
}

// testMocks bundles every repository mock behind a Server.
type testMocks struct {
	users    *MockUserRepository
	posts    *MockPostRepository
	groups   *MockGroupRepository
	comments *MockCommentRepository
	follows  *MockFollowRepository
}

// newTestServer builds a Server over repository mocks, skipping database
// and Redis entirely.
func newTestServer(t *testing.T) (*Server, *testMocks) {
	t.Helper()

	mocks := &testMocks{
		users:    new(MockUserRepository),
		posts:    new(MockPostRepository),
		groups:   new(MockGroupRepository),
		comments: new(MockCommentRepository),
		follows:  new(MockFollowRepository),
	}

	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret", Env: "test"},
		rateLimiter: middleware.NewRateLimiter(nil, "test"),
		userRepo:    mocks.users,
		postRepo:    mocks.posts,
		commentRepo: mocks.comments,
		groupRepo:   mocks.groups,
		followRepo:  mocks.follows,
	}
	s.feedService = service.NewFeedService(mocks.posts, mocks.groups, mocks.users, mocks.follows)
	s.postService = service.NewPostService(mocks.posts, mocks.groups)
	s.commentService = service.NewCommentService(mocks.comments, mocks.posts)
	s.groupService = service.NewGroupService(mocks.groups)
	s.followService = service.NewFollowService(mocks.follows, mocks.users)
	s.userService = service.NewUserService(mocks.users, mocks.posts, mocks.follows)

	return s, mocks
}

// asUser simulates the auth middleware for handler-level tests.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}
