package server

import (
	"veritas/internal/models"
	"veritas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateNews handles POST /api/news
func (s *Server) CreateNews(c *fiber.Ctx) error {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		SourceURL string `json:"source_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	news, err := s.newsService.CreateNews(c.Context(), service.CreateNewsInput{
		UserID:    currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(news)
}

// GetNewsList handles GET /api/news
func (s *Server) GetNewsList(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	items, err := s.newsService.ListNews(c.Context(), service.ListNewsInput{
		Limit:  p.Limit,
		Offset: p.Offset,
		Status: models.NewsStatus(c.Query("status")),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(items)
}

// SearchNews handles GET /api/news/search
func (s *Server) SearchNews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	items, err := s.newsService.SearchNews(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(items)
}

// GetNews handles GET /api/news/:id
func (s *Server) GetNews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	news, err := s.newsService.GetNews(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(news)
}

// UpdateNews handles PUT /api/news/:id
func (s *Server) UpdateNews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		SourceURL string `json:"source_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	news, err := s.newsService.UpdateNews(c.Context(), service.UpdateNewsInput{
		UserID:    currentUserID(c),
		NewsID:    id,
		Title:     req.Title,
		Content:   req.Content,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(news)
}

// DeleteNews handles DELETE /api/news/:id
func (s *Server) DeleteNews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.newsService.DeleteNews(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "News item deleted"})
}
