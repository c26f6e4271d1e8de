package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
	"github.com/codecohort/alumni-directory/internal/infrastructure/db/memory"
)

type fixture struct {
	store    *memory.Store
	users    ports.UserRepository
	cohorts  ports.CohortRepository
	projects ports.ProjectRepository
	queue    *recordingQueue

	userSvc    *UserService
	cohortSvc  *CohortService
	projectSvc *ProjectService
	reconciler *ReconcileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:    store,
		users:    memory.NewUserRepository(store),
		cohorts:  memory.NewCohortRepository(store),
		projects: memory.NewProjectRepository(store),
		queue:    &recordingQueue{},
	}
	log := zerolog.Nop()
	f.userSvc = NewUserService(f.users, f.cohorts, store, memory.NewLocker(5*time.Second), f.queue, log)
	f.cohortSvc = NewCohortService(f.cohorts, log)
	f.projectSvc = NewProjectService(f.projects, log)
	f.reconciler = NewReconcileService(f.users, f.cohorts, store, log)
	return f
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	u, _, err := f.userSvc.Register(context.Background(), ports.RegisterInput{Username: username, GitURL: "https://github.com/" + username, UserAvatar: "a"})
	require.NoError(t, err)
	return u
}

func (f *fixture) cohort(t *testing.T, name string) *domain.Cohort {
	t.Helper()
	c, err := f.cohortSvc.Create(context.Background(), name)
	require.NoError(t, err)
	return c
}

func (f *fixture) moveTo(t *testing.T, username, cohortID string) {
	t.Helper()
	_, err := f.userSvc.UpdateProfile(context.Background(), username, ports.UpdateProfileInput{
		Profile:  domain.Profile{GitURL: "https://github.com/" + username},
		CohortID: cohortID,
	})
	require.NoError(t, err)
}

// assertInvariant checks u.cohort = c iff u.id is in c.alumni, with no
// duplicate alumni entries.
func (f *fixture) assertInvariant(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	cohorts, err := f.cohorts.List(ctx)
	require.NoError(t, err)

	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, c := range cohorts {
		seen := make(map[string]bool, len(c.Alumni))
		for _, id := range c.Alumni {
			require.False(t, seen[id], "duplicate alumnus %s in cohort %s", id, c.ID)
			seen[id] = true
			u, ok := byID[id]
			require.True(t, ok, "cohort %s lists missing user %s", c.ID, id)
			require.Equal(t, c.ID, u.CohortID, "cohort %s lists user %s who points elsewhere", c.ID, id)
		}
		for _, u := range users {
			if u.CohortID == c.ID {
				require.True(t, seen[u.ID], "user %s points at cohort %s but is not listed", u.ID, c.ID)
			}
		}
	}
}

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *recordingQueue) Enqueue(cohortID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, cohortID)
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}

// directTx runs fn without isolation or rollback, like a store without
// multi-document transactions.
type directTx struct{}

func (directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (directTx) Atomic() bool { return false }

// flakyCohorts fails AddAlumnus, simulating a crash between the writes of a
// cohort move.
type flakyCohorts struct {
	ports.CohortRepository
}

var errStoreDown = errors.New("store unavailable")

func (flakyCohorts) AddAlumnus(ctx context.Context, cohortID, userID string) error {
	return errStoreDown
}

// flakyUsers fails Delete after the cohort pull of a removal.
type flakyUsers struct {
	ports.UserRepository
}

func (flakyUsers) Delete(ctx context.Context, id string) error {
	return errStoreDown
}

type busyLocker struct{}

func (busyLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, domain.ErrConflict
}
