// Package memory provides an in-memory implementation of the repository and
// transaction ports, used by tests and by STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.Transactor = (*Store)(nil)

type state struct {
	users    map[string]domain.User
	cohorts  map[string]domain.Cohort
	projects map[string]domain.Project
}

func newState() state {
	return state{
		users:    make(map[string]domain.User),
		cohorts:  make(map[string]domain.Cohort),
		projects: make(map[string]domain.Project),
	}
}

func (s state) clone() state {
	cp := newState()
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.cohorts {
		cp.cohorts[k] = cloneCohort(v)
	}
	for k, v := range s.projects {
		cp.projects[k] = v
	}
	return cp
}

func cloneCohort(c domain.Cohort) domain.Cohort {
	c.Alumni = append([]string{}, c.Alumni...)
	return c
}

type txKey struct{}

// Store holds all collections behind a single mutex. A transaction holds the
// mutex for its whole duration and restores a snapshot when fn fails.
type Store struct {
	mu    sync.Mutex
	state state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// WithinTransaction runs fn under the store lock. Nested calls join the
// outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// Atomic is always true: a failed transaction restores the snapshot.
func (s *Store) Atomic() bool { return true }

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// acquire locks the store unless ctx already belongs to a transaction on it.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
