package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// SearchService runs independent relevance-ranked searches over projects and
// forums, and enumerates project tags.
type SearchService struct {
	projectRepo repository.ProjectRepository
	forumRepo   repository.ForumRepository
}

// SearchResults holds per-entity-type ranked results. The two lists are
// paginated and counted independently; ranks are never merged across types.
type SearchResults struct {
	Projects SearchPage[*models.Project] `json:"projects"`
	Forums   SearchPage[*models.Forum]   `json:"forums"`
}

// SearchPage is one entity type's slice of ranked results plus its total.
type SearchPage[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

// NewSearchService creates a new SearchService.
func NewSearchService(projectRepo repository.ProjectRepository, forumRepo repository.ForumRepository) *SearchService {
	return &SearchService{projectRepo: projectRepo, forumRepo: forumRepo}
}

// ListTags returns the distinct lowercase tags across all projects, ascending.
func (s *SearchService) ListTags(ctx context.Context) ([]string, error) {
	return s.projectRepo.ListTags(ctx)
}

// Search runs the query over both entity types.
func (s *SearchService) Search(ctx context.Context, query string, page, limit int, currentUserID uint) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewBadRequestError("Search query parameter is required")
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	projects, totalProjects, err := s.projectRepo.Search(ctx, query, limit, offset, currentUserID)
	if err != nil {
		return nil, err
	}
	forums, totalForums, err := s.forumRepo.Search(ctx, query, limit, offset, currentUserID)
	if err != nil {
		return nil, err
	}

	return &SearchResults{
		Projects: SearchPage[*models.Project]{Data: projects, Total: totalProjects},
		Forums:   SearchPage[*models.Forum]{Data: forums, Total: totalForums},
	}, nil
}

// normalizePage clamps page to >= 1 and limit to [1, maxPageLimit].
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
