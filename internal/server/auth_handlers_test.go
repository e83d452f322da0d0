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
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!abc",
			},
			mockSetup: func() {
				mocks.users.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				mocks.users.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate User",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "Password123!abc",
			},
			mockSetup: func() {
				mocks.users.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "weak@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "testuser",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	s, mocks := newTestServer(t)
	app := fiber.New()
	app.Post("/login", s.Login)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.MinCost)
	assert.NoError(t, err)

	mocks.users.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&models.User{ID: 1, Username: "ana", Email: "ana@example.com", Password: string(hashed)}, nil)
	mocks.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]string{"email": "ana@example.com", "password": "Password123!abc"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong Password",
			body:           map[string]string{"email": "ana@example.com", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Email",
			body:           map[string]string{"email": "ghost@example.com", "password": "whatever"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var payload struct {
					Token string `json:"token"`
				}
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
				assert.NotEmpty(t, payload.Token)
			}
		})
	}
}
