package server

import (
	"net/http"
	"testing"

	"devbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"name":     "Other User",
				"email":    "test@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"name":     "Test User",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Short Password",
			body: map[string]string{
				"name":     "Test User",
				"email":    "short@example.com",
				"password": "abc",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Name",
			body: map[string]string{
				"email":    "anon@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/users", "", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegisterReturnsTokenAndGravatar(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Ada",
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?s=200&d=mm&r=pg", body.User.Avatar)
}

func TestLogin(t *testing.T) {
	s, app, db := newTestServer(t)
	createTestUser(t, s, db, "Ada", "ada@example.com")

	t.Run("Success", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "ada@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "ghost@example.com",
			"password": "password123",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetCurrentUser(t *testing.T) {
	s, app, db := newTestServer(t)
	user, token := createTestUser(t, s, db, "Ada", "ada@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)

	t.Run("No Token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth", "not.a.jwt", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
