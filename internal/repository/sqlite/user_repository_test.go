package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

func newTestRepos(t *testing.T) (repository.UserRepository, repository.ExerciseLogRepository) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	logs := NewExerciseLogRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, logs.Init(context.Background()))
	return users, logs
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	users, _ := newTestRepos(t)

	user := &domain.User{Username: "bob"}
	require.NoError(t, users.Create(context.Background(), user))

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 0, user.Count)

	got, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, 0, got.Count)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	users, _ := newTestRepos(t)

	_, err := users.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ListInsertionOrder(t *testing.T) {
	users, _ := newTestRepos(t)

	for _, name := range []string{"alice", "bob", "bob"} {
		require.NoError(t, users.Create(context.Background(), &domain.User{Username: name}))
	}

	got, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "bob", got[1].Username)
	assert.Equal(t, "bob", got[2].Username)
	// duplicate usernames are allowed; ids still differ
	assert.NotEqual(t, got[1].ID, got[2].ID)
}

func TestUserRepository_ListEmpty(t *testing.T) {
	users, _ := newTestRepos(t)

	got, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
