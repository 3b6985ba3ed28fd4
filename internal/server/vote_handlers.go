package server

import (
	"veritas/internal/models"
	"veritas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitVote handles POST /api/news/:id/votes
func (s *Server) SubmitVote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Result models.VoteResult `json:"result"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.voteService.SubmitVote(c.Context(), service.SubmitVoteInput{
		UserID: currentUserID(c),
		NewsID: id,
		Result: req.Result,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// RetractVote handles DELETE /api/news/:id/votes
func (s *Server) RetractVote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recalc, err := s.voteService.RetractVote(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Vote retracted",
		"recalculation": recalc,
	})
}

// GetVoteStats handles GET /api/news/:id/stats
func (s *Server) GetVoteStats(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.voteService.GetVoteStats(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}

// ListVotes handles GET /api/admin/news/:id/votes
func (s *Server) ListVotes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	votes, err := s.voteService.ListVotes(c.Context(), id, c.QueryBool("include_invalid", false))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(votes)
}

// InvalidateVote handles POST /api/admin/votes/:voteId/invalidate
func (s *Server) InvalidateVote(c *fiber.Ctx) error {
	return s.setVoteValidity(c, true)
}

// RestoreVote handles POST /api/admin/votes/:voteId/restore
func (s *Server) RestoreVote(c *fiber.Ctx) error {
	return s.setVoteValidity(c, false)
}

func (s *Server) setVoteValidity(c *fiber.Ctx, invalid bool) error {
	voteID, err := s.parseID(c, "voteId")
	if err != nil {
		return nil
	}

	result, err := s.voteService.InvalidateVote(c.Context(), voteID, invalid)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// BatchInvalidateVotes handles POST /api/admin/votes/batch-invalidate
func (s *Server) BatchInvalidateVotes(c *fiber.Ctx) error {
	var req struct {
		VoteIDs []uint `json:"vote_ids"`
		Invalid *bool  `json:"invalid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req.VoteIDs) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("vote_ids is required"))
	}

	invalid := true
	if req.Invalid != nil {
		invalid = *req.Invalid
	}

	result, err := s.voteService.BatchInvalidate(c.Context(), req.VoteIDs, invalid)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// RecalculateNews handles POST /api/admin/news/:id/recalculate
func (s *Server) RecalculateNews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		MinVotes      int     `json:"min_votes"`
		FakeThreshold float64 `json:"fake_threshold"`
	}
	// Empty body means "use configured thresholds"
	_ = c.BodyParser(&req)

	recalc, err := s.voteService.RecalculateNews(c.Context(), id, service.RecalcOptions{
		MinVotes:      req.MinVotes,
		FakeThreshold: req.FakeThreshold,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recalc)
}
