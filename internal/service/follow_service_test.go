package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_SelfFollowRejected(t *testing.T) {
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
	created := false
	follows := &followRepoStub{
		createFn: func(_ context.Context, _ *models.Follow) error {
			created = true
			return nil
		},
	}
	svc := NewFollowService(follows, users)

	err := svc.Follow(context.Background(), 1, "self")
	assertAppErrCode(t, err, models.CodeSelfFollow)
	assert.False(t, created, "self-follow must not touch the store")
}

func TestFollow_CreatesEdge(t *testing.T) {
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: username}, nil
		},
	}
	var edge *models.Follow
	follows := &followRepoStub{
		createFn: func(_ context.Context, f *models.Follow) error {
			edge = f
			return nil
		},
	}
	svc := NewFollowService(follows, users)

	err := svc.Follow(context.Background(), 1, "ana")
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, uint(1), edge.UserID)
	assert.Equal(t, uint(2), edge.AuthorID)
}

func TestFollow_UnknownAuthor(t *testing.T) {
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		},
	}
	svc := NewFollowService(&followRepoStub{}, users)

	err := svc.Follow(context.Background(), 1, "ghost")
	assertAppErrCode(t, err, models.CodeNotFound)
}

func TestFollow_RequiresLogin(t *testing.T) {
	svc := NewFollowService(&followRepoStub{}, &userRepoStub{})

	err := svc.Follow(context.Background(), 0, "ana")
	assertAppErrCode(t, err, models.CodeUnauthenticated)
}

func TestUnfollow_NeverFollowedSucceeds(t *testing.T) {
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: username}, nil
		},
	}
	follows := &followRepoStub{
		removeFn: func(_ context.Context, userID, authorID uint) error {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, uint(2), authorID)
			return nil
		},
	}
	svc := NewFollowService(follows, users)

	err := svc.Unfollow(context.Background(), 1, "ana")
	assert.NoError(t, err)
}

func TestIsFollowing_AnonymousIsFalse(t *testing.T) {
	svc := NewFollowService(&followRepoStub{}, &userRepoStub{})

	following, err := svc.IsFollowing(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.False(t, following)
}
