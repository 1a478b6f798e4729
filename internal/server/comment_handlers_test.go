package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devfolio/internal/models"
	"devfolio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByParent(ctx context.Context, parent models.ParentRef) ([]*models.Comment, error) {
	args := m.Called(ctx, parent)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockForumRepository is a mock of the ForumRepository interface
type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) Create(ctx context.Context, forum *models.Forum) error {
	args := m.Called(ctx, forum)
	return args.Error(0)
}

func (m *MockForumRepository) GetByID(ctx context.Context, id, currentUserID uint) (*models.Forum, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Forum), args.Error(1)
}

func (m *MockForumRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	return args.Get(0).([]*models.Forum), args.Get(1).(int64), args.Error(2)
}

func (m *MockForumRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Forum, int64, error) {
	args := m.Called(ctx, query, limit, offset, currentUserID)
	return args.Get(0).([]*models.Forum), args.Get(1).(int64), args.Error(2)
}

func (m *MockForumRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockForumRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCommentTestApp(
	commentRepo *MockCommentRepository,
	projectRepo *MockProjectRepository,
	forumRepo *MockForumRepository,
	userID uint,
) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{commentService: service.NewCommentService(commentRepo, projectRepo, forumRepo)}

	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		})
	}
	return app, s
}

func TestCreateComment(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(comments *MockCommentRepository, projects *MockProjectRepository, forums *MockForumRepository)
		expectedStatus int
	}{
		{
			name: "On Project",
			body: map[string]interface{}{"content": "nice work", "projectId": 7},
			mockSetup: func(comments *MockCommentRepository, projects *MockProjectRepository, forums *MockForumRepository) {
				projects.On("GetByID", mock.Anything, uint(7), uint(0)).
					Return(&models.Project{ID: 7}, nil)
				comments.On("Create", mock.Anything, mock.Anything).Return(nil)
				comments.On("GetByID", mock.Anything, mock.Anything).
					Return(&models.Comment{ID: 1, Content: "nice work"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "On Forum",
			body: map[string]interface{}{"content": "nice work", "forumId": 3},
			mockSetup: func(comments *MockCommentRepository, projects *MockProjectRepository, forums *MockForumRepository) {
				forums.On("GetByID", mock.Anything, uint(3), uint(0)).
					Return(&models.Forum{ID: 3}, nil)
				comments.On("Create", mock.Anything, mock.Anything).Return(nil)
				comments.On("GetByID", mock.Anything, mock.Anything).
					Return(&models.Comment{ID: 2, Content: "nice work"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Both Parents",
			body:           map[string]interface{}{"content": "nice work", "projectId": 7, "forumId": 3},
			mockSetup:      func(*MockCommentRepository, *MockProjectRepository, *MockForumRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "No Parent",
			body:           map[string]interface{}{"content": "nice work"},
			mockSetup:      func(*MockCommentRepository, *MockProjectRepository, *MockForumRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Parent",
			body: map[string]interface{}{"content": "nice work", "projectId": 99},
			mockSetup: func(comments *MockCommentRepository, projects *MockProjectRepository, forums *MockForumRepository) {
				projects.On("GetByID", mock.Anything, uint(99), uint(0)).
					Return(nil, models.NewNotFoundError("Project", uint(99)))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			projects := new(MockProjectRepository)
			forums := new(MockForumRepository)
			tt.mockSetup(comments, projects, forums)
			app, s := newCommentTestApp(comments, projects, forums, 1)
			app.Post("/comments", s.CreateComment)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestListComments(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("ListByParent", mock.Anything, models.ParentRef{Kind: models.ParentProject, ID: 7}).
		Return([]*models.Comment{{ID: 1}, {ID: 2}}, nil)
	app, s := newCommentTestApp(comments, new(MockProjectRepository), new(MockForumRepository), 0)
	app.Get("/comments", s.ListComments)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"By Project", "/comments?projectId=7", http.StatusOK},
		{"Both Parents", "/comments?projectId=7&forumId=3", http.StatusBadRequest},
		{"No Parent", "/comments", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeleteComment(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("GetByID", mock.Anything, uint(42)).
		Return(&models.Comment{ID: 42, AuthorID: 1}, nil)
	comments.On("Delete", mock.Anything, uint(42)).Return(nil)
	app, s := newCommentTestApp(comments, new(MockProjectRepository), new(MockForumRepository), 1)
	app.Delete("/comments/:id", s.DeleteComment)

	req := httptest.NewRequest(http.MethodDelete, "/comments/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeleteCommentOwnership(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("GetByID", mock.Anything, uint(42)).
		Return(&models.Comment{ID: 42, AuthorID: 1}, nil)
	comments.On("Delete", mock.Anything, uint(42)).Return(nil)
	app, s := newCommentTestApp(comments, new(MockProjectRepository), new(MockForumRepository), 2)
	app.Delete("/comments/:id", s.DeleteComment)

	req := httptest.NewRequest(http.MethodDelete, "/comments/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	comments.AssertNotCalled(t, "Delete", mock.Anything, uint(42))
}
