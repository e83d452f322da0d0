package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFollowUser(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Post("/users/:username/follow", asUser(1), s.FollowUser)

	mocks.users.On("GetByUsername", mock.Anything, "ana").
		Return(&models.User{ID: 2, Username: "ana"}, nil)
	mocks.follows.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Follow) bool {
		return f.UserID == 1 && f.AuthorID == 2
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/users/ana/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Following again is idempotent at the API level too.
	resp2, err := app.Test(httptest.NewRequest(http.MethodPost, "/users/ana/follow", nil))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp2.StatusCode)
}

func TestFollowUser_SelfIs400(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Post("/users/:username/follow", asUser(2), s.FollowUser)

	mocks.users.On("GetByUsername", mock.Anything, "ana").
		Return(&models.User{ID: 2, Username: "ana"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/ana/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, models.CodeSelfFollow, payload.Code)
	mocks.follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUnfollowUser_NeverFollowedIs204(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Delete("/users/:username/follow", asUser(1), s.UnfollowUser)

	mocks.users.On("GetByUsername", mock.Anything, "ana").
		Return(&models.User{ID: 2, Username: "ana"}, nil)
	mocks.follows.On("Remove", mock.Anything, uint(1), uint(2)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/ana/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGetUserProfile_ReportsFollowingFlag(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Get("/users/:username", asUser(1), s.GetUserProfile)

	mocks.users.On("GetByUsername", mock.Anything, "ana").
		Return(&models.User{ID: 2, Username: "ana"}, nil)
	mocks.posts.On("CountByAuthor", mock.Anything, uint(2)).Return(int64(3), nil)
	mocks.follows.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/ana", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile service.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.True(t, profile.Following)
	assert.Equal(t, int64(3), profile.PostCount)
}
