package repository

import (
	"context"
	"fmt"
	"testing"

	"devfolio/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

func createTestUser(t *testing.T) *models.User {
	t.Helper()
	name := uniqueName("user")
	user := &models.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, NewUserRepository(testDB).Create(context.Background(), user))
	return user
}

func createTestProject(t *testing.T, ownerID uint, title string, tags ...string) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:       title,
		Description: "integration test project description",
		Tags:        models.StringList(tags),
		OwnerID:     ownerID,
	}
	require.NoError(t, NewProjectRepository(testDB).Create(context.Background(), project))
	return project
}

func createTestForum(t *testing.T, ownerID uint, title string) *models.Forum {
	t.Helper()
	forum := &models.Forum{
		Title:       title,
		Description: "integration test forum description",
		OwnerID:     ownerID,
	}
	require.NoError(t, NewForumRepository(testDB).Create(context.Background(), forum))
	return forum
}
