package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupRepoWithNoGroups() *groupRepoStub {
	return &groupRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) {
			return nil, models.NewNotFoundError("Group", slug)
		},
		createFn: func(_ context.Context, g *models.Group) error {
			g.ID = 1
			return nil
		},
	}
}

func TestCreateGroup_DerivesSlugFromTitle(t *testing.T) {
	svc := NewGroupService(groupRepoWithNoGroups())

	group, err := svc.CreateGroup(context.Background(), CreateGroupInput{Title: "Go Enthusiasts"})
	require.NoError(t, err)
	assert.Equal(t, "go-enthusiasts", group.Slug)
}

func TestCreateGroup_SlugConflict(t *testing.T) {
	groups := &groupRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) {
			return &models.Group{ID: 1, Slug: slug}, nil
		},
	}
	svc := NewGroupService(groups)

	_, err := svc.CreateGroup(context.Background(), CreateGroupInput{Title: "Go Enthusiasts"})
	assertAppErrCode(t, err, models.CodeConflict)
}

func TestCreateGroup_Validation(t *testing.T) {
	svc := NewGroupService(groupRepoWithNoGroups())
	ctx := context.Background()

	t.Run("requires title", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, CreateGroupInput{Title: "   "})
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("rejects unslugifiable title", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, CreateGroupInput{Title: "***"})
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("rejects reserved slug", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, CreateGroupInput{Title: "My Group", Slug: "api"})
		assertAppErrCode(t, err, models.CodeValidation)
	})
}

func TestDeleteGroup_ResolvesSlugFirst(t *testing.T) {
	var deletedID uint
	groups := &groupRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) {
			return &models.Group{ID: 9, Slug: slug}, nil
		},
		deleteFn: func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	svc := NewGroupService(groups)

	err := svc.DeleteGroup(context.Background(), "go-enthusiasts")
	require.NoError(t, err)
	assert.Equal(t, uint(9), deletedID)
}
