package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	require.NoError(t, err)
	return d
}

func seedUser(t *testing.T, users repository.UserRepository) *domain.User {
	t.Helper()
	user := &domain.User{Username: "bob"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestExerciseLogRepository_AppendBumpsCount(t *testing.T) {
	users, logs := newTestRepos(t)
	user := seedUser(t, users)

	entry := &domain.LogEntry{
		UserID:      user.ID,
		Description: "run",
		Duration:    30,
		Date:        day(t, "2025-06-01"),
	}
	require.NoError(t, logs.Append(context.Background(), entry))
	assert.NotZero(t, entry.ID)

	got, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)

	entries, err := logs.ListByUser(context.Background(), user.ID, repository.LogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run", entries[0].Description)
	assert.Equal(t, 30.0, entries[0].Duration)
	assert.True(t, entries[0].Date.Equal(day(t, "2025-06-01")))
}

func TestExerciseLogRepository_AppendUnknownUser(t *testing.T) {
	_, logs := newTestRepos(t)

	entry := &domain.LogEntry{
		UserID:      "no-such-id",
		Description: "run",
		Duration:    30,
		Date:        day(t, "2025-06-01"),
	}
	err := logs.Append(context.Background(), entry)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExerciseLogRepository_ListPreservesAppendOrder(t *testing.T) {
	users, logs := newTestRepos(t)
	user := seedUser(t, users)

	// appended out of date order on purpose
	dates := []string{"2025-06-03", "2025-06-01", "2025-06-02"}
	for i, d := range dates {
		entry := &domain.LogEntry{
			UserID:      user.ID,
			Description: "run",
			Duration:    float64(10 * (i + 1)),
			Date:        day(t, d),
		}
		require.NoError(t, logs.Append(context.Background(), entry))
	}

	entries, err := logs.ListByUser(context.Background(), user.ID, repository.LogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, d := range dates {
		assert.True(t, entries[i].Date.Equal(day(t, d)))
	}
}

func TestExerciseLogRepository_DateRangeInclusive(t *testing.T) {
	users, logs := newTestRepos(t)
	user := seedUser(t, users)

	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"} {
		require.NoError(t, logs.Append(context.Background(), &domain.LogEntry{
			UserID: user.ID, Description: "run", Duration: 30, Date: day(t, d),
		}))
	}

	from := day(t, "2025-06-02")
	to := day(t, "2025-06-03")
	entries, err := logs.ListByUser(context.Background(), user.ID, repository.LogFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Date.Equal(from))
	assert.True(t, entries[1].Date.Equal(to))
}

func TestExerciseLogRepository_LimitAfterFiltering(t *testing.T) {
	users, logs := newTestRepos(t)
	user := seedUser(t, users)

	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-03"} {
		require.NoError(t, logs.Append(context.Background(), &domain.LogEntry{
			UserID: user.ID, Description: "run", Duration: 30, Date: day(t, d),
		}))
	}

	from := day(t, "2025-06-02")
	limit := 1
	entries, err := logs.ListByUser(context.Background(), user.ID, repository.LogFilter{From: &from, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Date.Equal(from))
}

func TestExerciseLogRepository_ScopedToUser(t *testing.T) {
	users, logs := newTestRepos(t)
	bob := seedUser(t, users)
	alice := &domain.User{Username: "alice"}
	require.NoError(t, users.Create(context.Background(), alice))

	require.NoError(t, logs.Append(context.Background(), &domain.LogEntry{
		UserID: bob.ID, Description: "run", Duration: 30, Date: day(t, "2025-06-01"),
	}))

	entries, err := logs.ListByUser(context.Background(), alice.ID, repository.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := users.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
}
