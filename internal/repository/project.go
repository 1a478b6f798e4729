package repository

import (
	"context"
	"errors"

	"devfolio/internal/cache"
	"devfolio/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Project, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Project, int64, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Project, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ListTags(ctx context.Context) ([]string, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTags(ctx)
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Project, error) {
	var project models.Project

	fetch := func() error {
		err := r.applyProjectDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner").
			First(&project, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ProjectKey(id), &project, cache.ProjectTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Project, int64, error) {
	var projects []*models.Project
	err := r.applyProjectDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}

// projectSearchVector is the text-search document over title, description and tags.
const projectSearchVector = "to_tsvector('english', projects.title || ' ' || projects.description || ' ' || coalesce(projects.tags::text, ''))"

func (r *projectRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Project, int64, error) {
	var projects []*models.Project
	cols, args := projectDetailColumns(currentUserID)
	cols += ", ts_rank(" + projectSearchVector + ", plainto_tsquery('english', ?)) AS score"
	args = append(args, query)

	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select(cols, args...).
		Where(projectSearchVector+" @@ plainto_tsquery('english', ?)", query).
		Preload("Owner").
		Order("score DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var total int64
	err = r.db.WithContext(ctx).Model(&models.Project{}).
		Where(projectSearchVector+" @@ plainto_tsquery('english', ?)", query).
		Count(&total).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}

// projectDetailColumns builds the select list with count and liked subqueries.
func projectDetailColumns(currentUserID uint) (string, []interface{}) {
	cols := "projects.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.parent_kind = 'project' AND comments.parent_id = projects.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.parent_kind = 'project' AND likes.parent_id = projects.id) as likes_count"

	if currentUserID != 0 {
		cols += ", EXISTS(SELECT 1 FROM likes WHERE likes.parent_kind = 'project' AND likes.parent_id = projects.id AND likes.user_id = ?) as liked"
		return cols, []interface{}{currentUserID}
	}
	return cols + ", false as liked", nil
}

// applyProjectDetails adds subqueries to fetch counts and liked status in a single query.
func (r *projectRepository) applyProjectDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	cols, args := projectDetailColumns(currentUserID)
	return db.Select(cols, args...)
}

// UpdateFields performs a single atomic UPDATE of the given columns.
func (r *projectRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, id)
	cache.InvalidateTags(ctx)
	return nil
}

// Delete removes the project together with its comments and likes.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_kind = ? AND parent_id = ?", models.ParentProject, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_kind = ? AND parent_id = ?", models.ParentProject, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, id)
	cache.InvalidateTags(ctx)
	return nil
}

// ListTags returns the distinct tags across all projects, sorted ascending.
// Tags are stored lower-cased, so no case folding is needed here.
func (r *projectRepository) ListTags(ctx context.Context) ([]string, error) {
	tags := []string{}
	err := cache.Aside(ctx, cache.TagsKey(), &tags, cache.TagsTTL, func() error {
		return r.db.WithContext(ctx).
			Raw(`SELECT DISTINCT t.tag
			     FROM projects, LATERAL jsonb_array_elements_text(projects.tags) AS t(tag)
			     ORDER BY t.tag ASC`).
			Scan(&tags).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
