package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devbook/internal/config"
	"devbook/internal/database"
	"devbook/internal/github"
	"devbook/internal/models"
	"devbook/internal/repository"
	"devbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server against an isolated in-memory database and
// returns a Fiber app with all routes registered.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:      "test_secret_that_is_long_enough_123",
		Env:            "test",
		GithubAPIURL:   "https://api.github.com",
		GithubPageSize: 5,
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
	s.profileService = service.NewProfileService(profileRepo, userRepo, db)
	s.postService = service.NewPostService(postRepo, userRepo)
	s.githubClient = github.NewClient(cfg.GithubAPIURL, "", cfg.GithubPageSize)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		},
	})
	s.SetupRoutes(app)

	return s, app, db
}

// createTestUser inserts a user with a bcrypt-hashed password and returns it
// with a valid token.
func createTestUser(t *testing.T, s *Server, db *gorm.DB, name, email string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Avatar:   models.GravatarURL(email),
	}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals the response body into dest.
func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
