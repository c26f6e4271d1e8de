package memory

import (
	"context"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	defer r.store.acquire(ctx)()

	p.ID = newID()
	r.store.state.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	defer r.store.acquire(ctx)()

	p, ok := r.store.state.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	return r.filter(ctx, func(*domain.Project) bool { return true }), nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, username string) ([]*domain.Project, error) {
	return r.filter(ctx, func(p *domain.Project) bool { return p.Owner == username }), nil
}

func (r *ProjectRepository) ListVisibleTo(ctx context.Context, username string) ([]*domain.Project, error) {
	return r.filter(ctx, func(p *domain.Project) bool { return p.VisibleTo(username) }), nil
}

func (r *ProjectRepository) Replace(ctx context.Context, id string, changes domain.ProjectChanges) error {
	defer r.store.acquire(ctx)()

	p, ok := r.store.state.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	changes.Apply(&p)
	r.store.state.projects[id] = p
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.state.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.store.state.projects, id)
	return nil
}

func (r *ProjectRepository) filter(ctx context.Context, keep func(*domain.Project) bool) []*domain.Project {
	defer r.store.acquire(ctx)()

	out := make([]*domain.Project, 0)
	for _, id := range sortedKeys(r.store.state.projects) {
		p := r.store.state.projects[id]
		if keep(&p) {
			out = append(out, &p)
		}
	}
	return out
}
