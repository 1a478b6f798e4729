package server

import (
	"devfolio/internal/models"
	"devfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateForum handles POST /api/forums
func (s *Server) CreateForum(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	forum, err := s.forumService.CreateForum(c.Context(), service.CreateForumInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(forum)
}

// ListForums handles GET /api/forums
func (s *Server) ListForums(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageLimit)
	userID := currentUserID(c)

	forums, total, err := s.forumService.ListForums(c.Context(), p.Page, p.Limit, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": forums,
		"meta": fiber.Map{
			"currentPage": p.Page,
			"totalPages":  totalPages(total, p.Limit),
			"totalForums": total,
			"limit":       p.Limit,
		},
	})
}

// GetForum handles GET /api/forums/:id
func (s *Server) GetForum(c *fiber.Ctx) error {
	forumID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	forum, svcErr := s.forumService.GetForum(c.Context(), forumID, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(forum)
}

// UpdateForum handles PUT /api/forums/:id
func (s *Server) UpdateForum(c *fiber.Ctx) error {
	forumID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	forum, svcErr := s.forumService.UpdateForum(c.Context(), service.UpdateForumInput{
		UserID:      currentUserID(c),
		ForumID:     forumID,
		Title:       req.Title,
		Description: req.Description,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(forum)
}

// DeleteForum handles DELETE /api/forums/:id
func (s *Server) DeleteForum(c *fiber.Ctx) error {
	forumID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.forumService.DeleteForum(c.Context(), forumID, currentUserID(c)); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikeForum handles POST /api/forums/:id/like
func (s *Server) LikeForum(c *fiber.Ctx) error {
	forumID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.forumService.ToggleLike(c.Context(), forumID, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	message := "Forum liked"
	if !result.Liked {
		message = "Forum unliked"
	}

	return c.JSON(fiber.Map{
		"message":     message,
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}
