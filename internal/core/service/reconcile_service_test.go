package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

func TestReconcile_RebuildsDriftedAlumni(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.cohort(t, "2024A")
	x := f.register(t, "x")
	y := f.register(t, "y")
	f.moveTo(t, "x", c.ID)
	f.moveTo(t, "y", c.ID)

	// Corrupt the membership list directly.
	ghost := primitive.NewObjectID().Hex()
	require.NoError(t, f.cohorts.RemoveAlumnus(ctx, c.ID, y.ID))
	require.NoError(t, f.cohorts.AddAlumnus(ctx, c.ID, ghost))

	corrected, err := f.reconciler.Reconcile(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, corrected)

	got, err := f.cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{x.ID, y.ID}, got.Alumni)
	f.assertInvariant(t)
}

func TestReconcile_RemovesUserReferencingAnotherCohort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1 := f.cohort(t, "2024A")
	c2 := f.cohort(t, "2024B")
	x := f.register(t, "x")
	f.moveTo(t, "x", c2.ID)
	require.NoError(t, f.cohorts.AddAlumnus(ctx, c1.ID, x.ID))

	corrected, err := f.reconciler.Reconcile(ctx, c1.ID)
	require.NoError(t, err)
	assert.True(t, corrected)

	got, err := f.cohorts.FindByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Alumni)
	f.assertInvariant(t)
}

func TestReconcile_NoDrift(t *testing.T) {
	f := newFixture(t)
	c := f.cohort(t, "2024A")
	f.register(t, "x")
	f.moveTo(t, "x", c.ID)

	corrected, err := f.reconciler.Reconcile(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, corrected)
}

// listHookUsers runs hook once, before the first ListByCohort call.
type listHookUsers struct {
	ports.UserRepository
	once sync.Once
	hook func()
}

func (u *listHookUsers) ListByCohort(ctx context.Context, cohortID string) ([]*domain.User, error) {
	u.once.Do(u.hook)
	return u.UserRepository.ListByCohort(ctx, cohortID)
}

func TestReconcile_KeepsMoveCommittedDuringRebuild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.cohort(t, "2024A")
	f.register(t, "x")
	require.NoError(t, f.cohorts.AddAlumnus(ctx, c.ID, primitive.NewObjectID().Hex()))

	// x joins c after the cohort was read but before its members are listed.
	users := &listHookUsers{UserRepository: f.users, hook: func() { f.moveTo(t, "x", c.ID) }}
	reconciler := NewReconcileService(users, f.cohorts, directTx{}, zerolog.Nop())

	corrected, err := reconciler.Reconcile(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, corrected)

	f.assertInvariant(t)
}

func TestReconcile_KeepsUserJoiningAfterListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.cohort(t, "2024A")
	x := f.register(t, "x")
	// x is already listed in c but the user reference is written later.
	require.NoError(t, f.cohorts.AddAlumnus(ctx, c.ID, x.ID))

	users := &lateReference{UserRepository: f.users, cohortID: c.ID, userID: x.ID}
	reconciler := NewReconcileService(users, f.cohorts, directTx{}, zerolog.Nop())

	_, err := reconciler.Reconcile(ctx, c.ID)
	require.NoError(t, err)

	got, err := f.cohorts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{x.ID}, got.Alumni)
}

// lateReference lists no members but reports userID as referencing cohortID
// on lookup, as if the reference landed right after the listing.
type lateReference struct {
	ports.UserRepository
	cohortID, userID string
}

func (l *lateReference) ListByCohort(ctx context.Context, cohortID string) ([]*domain.User, error) {
	return nil, nil
}

func (l *lateReference) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := l.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if id == l.userID {
		u.CohortID = l.cohortID
	}
	return u, nil
}

func TestReconcile_CohortIDs(t *testing.T) {
	f := newFixture(t)
	a := f.cohort(t, "A")
	b := f.cohort(t, "B")

	ids, err := f.reconciler.CohortIDs(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}
