package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/news", s.CreateNews)
	app.Get("/news", s.GetNewsList)
	app.Get("/news/:id/comments", s.GetComments)
	app.Post("/news/:id/comments", s.CreateComment)
	return app
}

func TestCreateNewsHandler(t *testing.T) {
	t.Run("created pending", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := newTestServer(t, db, nil)
		app := newsApp(s, 3)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "news"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		body := []byte(`{"title":"Bridge closure announced","content":"The old bridge closes next week for repairs."}`)
		req := httptest.NewRequest(http.MethodPost, "/news", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
			UserID uint   `json:"user_id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, uint(1), out.ID)
		assert.Equal(t, "pending", out.Status)
		assert.Equal(t, uint(3), out.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing title", func(t *testing.T) {
		db, _ := setupMockDB(t)
		s := newTestServer(t, db, nil)
		app := newsApp(s, 3)

		body := []byte(`{"content":"body only"}`)
		req := httptest.NewRequest(http.MethodPost, "/news", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetNewsListHandler(t *testing.T) {
	t.Run("bad status filter", func(t *testing.T) {
		db, _ := setupMockDB(t)
		s := newTestServer(t, db, nil)
		app := newsApp(s, 3)

		req := httptest.NewRequest(http.MethodGet, "/news?status=bogus", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("filtered list", func(t *testing.T) {
		db, mock := setupMockDB(t)
		s := newTestServer(t, db, nil)
		app := newsApp(s, 3)

		mock.ExpectQuery(`SELECT news\..* FROM "news" WHERE status = .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "user_id"}).
				AddRow(1, "headline", "fake", 1))
		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "reporter"))

		req := httptest.NewRequest(http.MethodGet, "/news?status=fake", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var items []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		assert.Len(t, items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateCommentHandler_MissingNews(t *testing.T) {
	db, mock := setupMockDB(t)
	s := newTestServer(t, db, nil)
	app := newsApp(s, 3)

	mock.ExpectQuery(`SELECT news\..* FROM "news"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := []byte(`{"content":"first"}`)
	req := httptest.NewRequest(http.MethodPost, "/news/99/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
