package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"veritas/internal/config"
	"veritas/internal/models"
	"veritas/internal/repository"
	"veritas/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

// newTestServer wires a Server directly, bypassing NewServerWithDeps so tests
// do not register duplicate Prometheus collectors.
func newTestServer(t *testing.T, db *gorm.DB, rdb *redis.Client) *Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "unit-test-secret-unit-test-secret!!",
		Port:          "0",
		Env:           "test",
		VoteMinCount:  5,
		FakeThreshold: 0.6,
	}

	s := &Server{config: cfg, db: db, redis: rdb}
	if db != nil {
		s.userRepo = repository.NewUserRepository(db)
		s.newsRepo = repository.NewNewsRepository(db)
		s.voteRepo = repository.NewVoteRepository(db)
		s.commentRepo = repository.NewCommentRepository(db)
		s.voteService = service.NewVoteService(s.voteRepo, s.newsRepo, cfg.VoteMinCount, cfg.FakeThreshold)
		s.userService = service.NewUserService(s.userRepo, s.voteService)
		s.newsService = service.NewNewsService(s.newsRepo, s.userService.IsAdmin)
		s.commentService = service.NewCommentService(s.commentRepo, s.newsRepo, s.userService.IsAdmin)
	}
	return s
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	tests := []struct {
		name   string
		url    string
		limit  float64
		offset float64
	}{
		{"defaults", "/items", 25, 0},
		{"custom", "/items?limit=10&offset=30", 10, 30},
		{"capped at max", "/items?limit=5000", 100, 0},
		{"negative offset clamped", "/items?offset=-5", 25, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.limit, body["limit"])
			assert.Equal(t, tc.offset, body["offset"])
		})
	}
}

func TestParseID(t *testing.T) {
	s := &Server{}

	t.Run("valid", func(t *testing.T) {
		app := fiber.New()
		app.Get("/items/:id", func(c *fiber.Ctx) error {
			id, err := s.parseID(c, "id")
			if err != nil {
				return nil
			}
			return c.JSON(fiber.Map{"id": id})
		})

		req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-numeric", func(t *testing.T) {
		app := fiber.New()
		app.Get("/items/:id", func(c *fiber.Ctx) error {
			_, _ = s.parseID(c, "id")
			return nil
		})

		req := httptest.NewRequest(http.MethodGet, "/items/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid ID", body["error"])
	})

	t.Run("vote id label", func(t *testing.T) {
		app := fiber.New()
		app.Get("/votes/:voteId", func(c *fiber.Ctx) error {
			_, _ = s.parseID(c, "voteId")
			return nil
		})

		req := httptest.NewRequest(http.MethodGet, "/votes/zero", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid vote ID", body["error"])
	})
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", models.NewNotFoundError("News", 1), http.StatusNotFound},
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"duplicate vote", models.NewDuplicateVoteError(1), http.StatusConflict},
		{"unauthorized", models.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"untyped", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return respondServiceError(c, tc.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	t.Run("rejects non-admin", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := newTestServer(t, db, nil)

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_admin"}).AddRow(2, false))

		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(2))
			return c.Next()
		})
		app.Get("/admin", s.AdminRequired(), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allows admin", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := newTestServer(t, db, nil)

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_admin"}).AddRow(1, true))

		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(1))
			return c.Next()
		})
		app.Get("/admin", s.AdminRequired(), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
