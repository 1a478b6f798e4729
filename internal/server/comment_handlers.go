package server

import (
	"devfolio/internal/models"
	"devfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parentRef builds a ParentRef from a projectId/forumId pair, enforcing that
// exactly one of them is set.
func parentRef(projectID, forumID uint) (models.ParentRef, error) {
	switch {
	case projectID > 0 && forumID > 0:
		return models.ParentRef{}, models.NewBadRequestError("Provide either projectId or forumId, not both")
	case projectID > 0:
		return models.ParentRef{Kind: models.ParentProject, ID: projectID}, nil
	case forumID > 0:
		return models.ParentRef{Kind: models.ParentForum, ID: forumID}, nil
	default:
		return models.ParentRef{}, models.NewBadRequestError("Either projectId or forumId is required")
	}
}

// ListComments handles GET /api/comments?projectId=N or ?forumId=N
func (s *Server) ListComments(c *fiber.Ctx) error {
	projectID := c.QueryInt("projectId", 0)
	forumID := c.QueryInt("forumId", 0)
	if projectID < 0 || forumID < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid parent ID"))
	}

	parent, err := parentRef(uint(projectID), uint(forumID))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), parent)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": comments,
	})
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Content   string `json:"content"`
		ProjectID uint   `json:"projectId"`
		ForumID   uint   `json:"forumId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	parent, err := parentRef(req.ProjectID, req.ForumID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		AuthorID: userID,
		Content:  req.Content,
		Parent:   parent,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.DeleteComment(c.Context(), commentID, currentUserID(c)); svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
