package server

import (
	"devfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /api/tags
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.searchService.ListTags(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"tags": tags,
	})
}

// Search handles GET /api/search?query=term. The short form ?q= is accepted
// as an alias.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		query = c.Query("q")
	}
	p := parsePagination(c, defaultPageLimit)

	results, err := s.searchService.Search(c.Context(), query, p.Page, p.Limit, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"projects": results.Projects,
		"forums":   results.Forums,
		"meta": fiber.Map{
			"currentPage": p.Page,
			"limit":       p.Limit,
		},
	})
}
