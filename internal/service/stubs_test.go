package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"devfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	getByUsernameOrEmailFn func(context.Context, string, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.getByUsernameOrEmailFn(ctx, username, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:              func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:        func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameOrEmailFn: func(_ context.Context, _, _ string) (*models.User, error) { return nil, nil },
		createFn:               func(_ context.Context, _ *models.User) error { return nil },
	}
}

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	createFn       func(context.Context, *models.Project) error
	getByIDFn      func(context.Context, uint, uint) (*models.Project, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Project, int64, error)
	searchFn       func(context.Context, string, int, int, uint) ([]*models.Project, int64, error)
	updateFieldsFn func(context.Context, uint, map[string]interface{}) error
	deleteFn       func(context.Context, uint) error
	listTagsFn     func(context.Context) ([]string, error)
}

func (s *projectRepoStub) Create(ctx context.Context, project *models.Project) error {
	return s.createFn(ctx, project)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *projectRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Project, int64, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *projectRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Project, int64, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *projectRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *projectRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *projectRepoStub) ListTags(ctx context.Context) ([]string, error) {
	return s.listTagsFn(ctx)
}

func noopProjectRepo() *projectRepoStub {
	return &projectRepoStub{
		createFn: func(_ context.Context, _ *models.Project) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Project, error) {
			return &models.Project{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Project, int64, error) {
			return nil, 0, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Project, int64, error) {
			return nil, 0, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listTagsFn:     func(_ context.Context) ([]string, error) { return nil, nil },
	}
}

// forumRepoStub is a stub for repository.ForumRepository.
type forumRepoStub struct {
	createFn       func(context.Context, *models.Forum) error
	getByIDFn      func(context.Context, uint, uint) (*models.Forum, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Forum, int64, error)
	searchFn       func(context.Context, string, int, int, uint) ([]*models.Forum, int64, error)
	updateFieldsFn func(context.Context, uint, map[string]interface{}) error
	deleteFn       func(context.Context, uint) error
}

func (s *forumRepoStub) Create(ctx context.Context, forum *models.Forum) error {
	return s.createFn(ctx, forum)
}
func (s *forumRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Forum, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *forumRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *forumRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *forumRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *forumRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopForumRepo() *forumRepoStub {
	return &forumRepoStub{
		createFn: func(_ context.Context, _ *models.Forum) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Forum, error) {
			return &models.Forum{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Forum, int64, error) {
			return nil, 0, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Forum, int64, error) {
			return nil, 0, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByParentFn  func(context.Context, models.ParentRef) ([]*models.Comment, error)
	updateContentFn func(context.Context, uint, string) error
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByParent(ctx context.Context, parent models.ParentRef) ([]*models.Comment, error) {
	return s.listByParentFn(ctx, parent)
}
func (s *commentRepoStub) UpdateContent(ctx context.Context, id uint, content string) error {
	return s.updateContentFn(ctx, id, content)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByParentFn:  func(_ context.Context, _ models.ParentRef) ([]*models.Comment, error) { return nil, nil },
		updateContentFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn  func(context.Context, models.ParentRef, uint) (bool, int64, error)
	countFn   func(context.Context, models.ParentRef) (int64, error)
	isLikedFn func(context.Context, models.ParentRef, uint) (bool, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, parent models.ParentRef, userID uint) (bool, int64, error) {
	return s.toggleFn(ctx, parent, userID)
}
func (s *likeRepoStub) Count(ctx context.Context, parent models.ParentRef) (int64, error) {
	return s.countFn(ctx, parent)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, parent models.ParentRef, userID uint) (bool, error) {
	return s.isLikedFn(ctx, parent, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:  func(_ context.Context, _ models.ParentRef, _ uint) (bool, int64, error) { return true, 1, nil },
		countFn:   func(_ context.Context, _ models.ParentRef) (int64, error) { return 0, nil },
		isLikedFn: func(_ context.Context, _ models.ParentRef, _ uint) (bool, error) { return false, nil },
	}
}

// memoryLikeRepo implements set semantics in memory so toggle tests can
// exercise real add/remove behavior.
type memoryLikeRepo struct {
	members map[string]map[uint]bool
}

func newMemoryLikeRepo() *memoryLikeRepo {
	return &memoryLikeRepo{members: map[string]map[uint]bool{}}
}

func (m *memoryLikeRepo) key(parent models.ParentRef) string {
	return fmt.Sprintf("%s:%d", parent.Kind, parent.ID)
}

func (m *memoryLikeRepo) Toggle(_ context.Context, parent models.ParentRef, userID uint) (bool, int64, error) {
	k := m.key(parent)
	if m.members[k] == nil {
		m.members[k] = map[uint]bool{}
	}
	if m.members[k][userID] {
		delete(m.members[k], userID)
		return false, int64(len(m.members[k])), nil
	}
	m.members[k][userID] = true
	return true, int64(len(m.members[k])), nil
}

func (m *memoryLikeRepo) Count(_ context.Context, parent models.ParentRef) (int64, error) {
	return int64(len(m.members[m.key(parent)])), nil
}

func (m *memoryLikeRepo) IsLiked(_ context.Context, parent models.ParentRef, userID uint) (bool, error) {
	return m.members[m.key(parent)][userID], nil
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}
