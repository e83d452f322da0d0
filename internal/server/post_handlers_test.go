package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Post("/posts", asUser(1), s.CreatePost)

	mocks.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Text == "hello world" && p.UserID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = 7
	}).Return(nil)
	mocks.posts.On("GetByID", mock.Anything, uint(7)).
		Return(&models.Post{ID: 7, Text: "hello world", UserID: 1, User: models.User{ID: 1, Username: "ana"}}, nil)

	body, _ := json.Marshal(map[string]string{"text": "hello world"})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreatePost_EmptyTextIs400(t *testing.T) {
	s, _ := newTestServer(t)
	app := fiber.New()
	app.Post("/posts", asUser(1), s.CreatePost)

	body, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePost_NonAuthorIs403(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Put("/posts/:id", asUser(2), s.UpdatePost)

	mocks.posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, UserID: 1, Text: "original"}, nil)

	body, _ := json.Marshal(map[string]string{"text": "hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mocks.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePost_AuthorGets204(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Delete("/posts/:id", asUser(1), s.DeletePost)

	mocks.posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, UserID: 1}, nil)
	mocks.posts.On("Delete", mock.Anything, uint(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/posts/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mocks.posts.AssertCalled(t, "Delete", mock.Anything, uint(5))
}

func TestGetPost_UnknownIDIs404(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	mocks.posts.On("GetByID", mock.Anything, uint(42)).
		Return(nil, models.NewNotFoundError("Post", uint(42)))

	req := httptest.NewRequest(http.MethodGet, "/posts/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPost_MalformedIDIs400(t *testing.T) {
	s, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
