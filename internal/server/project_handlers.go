package server

import (
	"devfolio/internal/models"
	"devfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		RepoURL     string   `json:"repo_url"`
		LiveURL     string   `json:"live_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(c.Context(), service.CreateProjectInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects handles GET /api/projects
func (s *Server) ListProjects(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageLimit)
	userID := currentUserID(c)

	projects, total, err := s.projectService.ListProjects(c.Context(), p.Page, p.Limit, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": projects,
		"meta": fiber.Map{
			"currentPage":   p.Page,
			"totalPages":    totalPages(total, p.Limit),
			"totalProjects": total,
			"limit":         p.Limit,
		},
	})
}

// GetProject handles GET /api/projects/:id
func (s *Server) GetProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, svcErr := s.projectService.GetProject(c.Context(), projectID, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(project)
}

// UpdateProject handles PUT /api/projects/:id
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Tags        *[]string `json:"tags"`
		RepoURL     *string   `json:"repo_url"`
		LiveURL     *string   `json:"live_url"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, svcErr := s.projectService.UpdateProject(c.Context(), service.UpdateProjectInput{
		UserID:      currentUserID(c),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.projectService.DeleteProject(c.Context(), projectID, currentUserID(c)); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikeProject handles POST /api/projects/:id/like
func (s *Server) LikeProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.projectService.ToggleLike(c.Context(), projectID, currentUserID(c))
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	message := "Project liked"
	if !result.Liked {
		message = "Project unliked"
	}

	return c.JSON(fiber.Map{
		"message":     message,
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}
