package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

func TestStore_TransactionRollsBack(t *testing.T) {
	store := NewStore()
	cohorts := NewCohortRepository(store)
	ctx := context.Background()

	c, err := cohorts.Create(ctx, "2024A")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, cohorts.AddAlumnus(ctx, c.ID, "u1"))
		require.NoError(t, cohorts.Rename(ctx, c.ID, "renamed"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024A", got.Name)
	assert.Empty(t, got.Alumni)
}

func TestStore_NestedTransactionJoinsOuter(t *testing.T) {
	store := NewStore()
	cohorts := NewCohortRepository(store)
	ctx := context.Background()

	c, err := cohorts.Create(ctx, "2024A")
	require.NoError(t, err)

	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		return store.WithinTransaction(ctx, func(ctx context.Context) error {
			return cohorts.AddAlumnus(ctx, c.ID, "u1")
		})
	})
	require.NoError(t, err)

	got, err := cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Alumni)
}

func TestCohortRepository_SetSemantics(t *testing.T) {
	cohorts := NewCohortRepository(NewStore())
	ctx := context.Background()

	c, err := cohorts.Create(ctx, "2024A")
	require.NoError(t, err)

	require.NoError(t, cohorts.AddAlumnus(ctx, c.ID, "u1"))
	require.NoError(t, cohorts.AddAlumnus(ctx, c.ID, "u1"))
	require.NoError(t, cohorts.AddAlumnus(ctx, c.ID, "u2"))
	require.NoError(t, cohorts.RemoveAlumnus(ctx, c.ID, "u1"))
	require.NoError(t, cohorts.RemoveAlumnus(ctx, "unknown", "u2"))

	got, err := cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.Alumni)

	require.ErrorIs(t, cohorts.AddAlumnus(ctx, "unknown", "u1"), domain.ErrCohortNotFound)
}

func TestCohortRepository_ReturnsCopies(t *testing.T) {
	cohorts := NewCohortRepository(NewStore())
	ctx := context.Background()

	c, err := cohorts.Create(ctx, "2024A")
	require.NoError(t, err)
	require.NoError(t, cohorts.AddAlumnus(ctx, c.ID, "u1"))

	got, err := cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	got.Alumni[0] = "tampered"

	again, err := cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, again.Alumni)
}

func TestUserRepository_UpsertAndProfile(t *testing.T) {
	users := NewUserRepository(NewStore())
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	u, created, err := users.Upsert(ctx, "x", "g1", "a1", at)
	require.NoError(t, err)
	require.True(t, created)

	cohort := "c1"
	require.NoError(t, users.UpdateProfile(ctx, u.ID, domain.Profile{FullName: "X", GitURL: "g1"}, &cohort, at))

	again, created, err := users.Upsert(ctx, "x", "g2", "a2", at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "X", again.FullName)
	assert.Equal(t, "c1", again.CohortID)
	assert.Equal(t, at.Add(time.Hour), again.LastLogin)

	members, err := users.ListByCohort(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, members, 1)

	require.NoError(t, users.Delete(ctx, u.ID))
	require.ErrorIs(t, users.Delete(ctx, u.ID), domain.ErrUserNotFound)
	_, err = users.FindByUsername(ctx, "x")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProjectRepository_VisibleTo(t *testing.T) {
	projects := NewProjectRepository(NewStore())
	ctx := context.Background()

	for _, p := range []*domain.Project{
		{Name: "a", Owner: "bob", Collaborators: "Alice, Carol"},
		{Name: "b", Owner: "alice"},
		{Name: "c", Owner: "dave", Collaborators: "carol"},
	} {
		require.NoError(t, projects.Create(ctx, p))
		require.NotEmpty(t, p.ID)
	}

	visible, err := projects.ListVisibleTo(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	none, err := projects.ListVisibleTo(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
