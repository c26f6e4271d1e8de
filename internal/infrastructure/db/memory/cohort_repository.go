package memory

import (
	"context"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.CohortRepository = (*CohortRepository)(nil)

type CohortRepository struct {
	store *Store
}

func NewCohortRepository(store *Store) *CohortRepository {
	return &CohortRepository{store: store}
}

func (r *CohortRepository) Create(ctx context.Context, name string) (*domain.Cohort, error) {
	defer r.store.acquire(ctx)()

	c := domain.Cohort{ID: newID(), Name: name, Alumni: []string{}}
	r.store.state.cohorts[c.ID] = c
	out := cloneCohort(c)
	return &out, nil
}

func (r *CohortRepository) FindByID(ctx context.Context, id string) (*domain.Cohort, error) {
	defer r.store.acquire(ctx)()

	c, ok := r.store.state.cohorts[id]
	if !ok {
		return nil, domain.ErrCohortNotFound
	}
	out := cloneCohort(c)
	return &out, nil
}

func (r *CohortRepository) List(ctx context.Context) ([]*domain.Cohort, error) {
	defer r.store.acquire(ctx)()

	out := make([]*domain.Cohort, 0, len(r.store.state.cohorts))
	for _, id := range sortedKeys(r.store.state.cohorts) {
		c := cloneCohort(r.store.state.cohorts[id])
		out = append(out, &c)
	}
	return out, nil
}

func (r *CohortRepository) Rename(ctx context.Context, id, name string) error {
	return r.update(ctx, id, func(c *domain.Cohort) { c.Name = name })
}

func (r *CohortRepository) AddAlumnus(ctx context.Context, cohortID, userID string) error {
	return r.update(ctx, cohortID, func(c *domain.Cohort) {
		if !c.HasAlumnus(userID) {
			c.Alumni = append(c.Alumni, userID)
		}
	})
}

// RemoveAlumnus is a no-op for an unknown cohort, like $pull on no match.
func (r *CohortRepository) RemoveAlumnus(ctx context.Context, cohortID, userID string) error {
	defer r.store.acquire(ctx)()

	c, ok := r.store.state.cohorts[cohortID]
	if !ok {
		return nil
	}
	kept := make([]string, 0, len(c.Alumni))
	for _, id := range c.Alumni {
		if id != userID {
			kept = append(kept, id)
		}
	}
	c.Alumni = kept
	r.store.state.cohorts[cohortID] = c
	return nil
}

func (r *CohortRepository) update(ctx context.Context, id string, mutate func(*domain.Cohort)) error {
	defer r.store.acquire(ctx)()

	c, ok := r.store.state.cohorts[id]
	if !ok {
		return domain.ErrCohortNotFound
	}
	c = cloneCohort(c)
	mutate(&c)
	r.store.state.cohorts[id] = c
	return nil
}
