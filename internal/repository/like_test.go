package repository

import (
	"context"
	"sync"
	"testing"

	"devfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t)
	user := createTestUser(t)
	project := createTestProject(t, owner.ID, uniqueName("Likeable"))

	repo := NewLikeRepository(testDB)
	parent := models.ParentRef{Kind: models.ParentProject, ID: project.ID}

	liked, count, err := repo.Toggle(ctx, parent, user.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	isLiked, err := repo.IsLiked(ctx, parent, user.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)

	liked, count, err = repo.Toggle(ctx, parent, user.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	isLiked, err = repo.IsLiked(ctx, parent, user.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
}

func TestLikeRepository_KindsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t)
	user := createTestUser(t)
	project := createTestProject(t, owner.ID, uniqueName("Collision Project"))

	// A forum sharing the project's numeric ID would be the collision case;
	// the kind column keeps the two like sets apart regardless.
	repo := NewLikeRepository(testDB)
	projectParent := models.ParentRef{Kind: models.ParentProject, ID: project.ID}
	forumParent := models.ParentRef{Kind: models.ParentForum, ID: project.ID}

	_, _, err := repo.Toggle(ctx, projectParent, user.ID)
	require.NoError(t, err)

	count, err := repo.Count(ctx, forumParent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLikeRepository_ConcurrentTogglesStayConsistent(t *testing.T) {
	ctx := context.Background()
	owner := createTestUser(t)
	project := createTestProject(t, owner.ID, uniqueName("Contended"))

	const users = 8
	userIDs := make([]uint, users)
	for i := range userIDs {
		userIDs[i] = createTestUser(t).ID
	}

	repo := NewLikeRepository(testDB)
	parent := models.ParentRef{Kind: models.ParentProject, ID: project.ID}

	// Every user toggles three times concurrently; an odd number of
	// toggles leaves each user liking the project exactly once.
	var wg sync.WaitGroup
	for _, id := range userIDs {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 3; i++ {
				_, _, err := repo.Toggle(ctx, parent, id)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := repo.Count(ctx, parent)
	require.NoError(t, err)
	assert.Equal(t, int64(users), count)
}
