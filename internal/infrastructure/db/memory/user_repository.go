package memory

import (
	"context"
	"time"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Upsert(ctx context.Context, username, gitURL, avatar string, at time.Time) (*domain.User, bool, error) {
	defer r.store.acquire(ctx)()

	for id, u := range r.store.state.users {
		if u.Username == username {
			u.GitURL = gitURL
			u.UserAvatar = avatar
			u.LastLogin = at
			r.store.state.users[id] = u
			return &u, false, nil
		}
	}

	u := domain.User{
		ID:         newID(),
		Username:   username,
		GitURL:     gitURL,
		UserAvatar: avatar,
		LastLogin:  at,
	}
	r.store.state.users[u.ID] = u
	return &u, true, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.store.acquire(ctx)()

	u, ok := r.store.state.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.store.acquire(ctx)()

	for _, id := range sortedKeys(r.store.state.users) {
		if u := r.store.state.users[id]; u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.filter(ctx, func(domain.User) bool { return true }), nil
}

func (r *UserRepository) ListByCohort(ctx context.Context, cohortID string) ([]*domain.User, error) {
	return r.filter(ctx, func(u domain.User) bool { return u.CohortID == cohortID }), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p domain.Profile, cohortID *string, at time.Time) error {
	defer r.store.acquire(ctx)()

	u, ok := r.store.state.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FullName = p.FullName
	u.GitURL = p.GitURL
	u.Email = p.Email
	u.LinkedIn = p.LinkedIn
	u.AboutMe = p.AboutMe
	u.LastLogin = at
	if cohortID != nil {
		u.CohortID = *cohortID
	}
	r.store.state.users[id] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.state.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.state.users, id)
	return nil
}

func (r *UserRepository) filter(ctx context.Context, keep func(domain.User) bool) []*domain.User {
	defer r.store.acquire(ctx)()

	out := make([]*domain.User, 0, len(r.store.state.users))
	for _, id := range sortedKeys(r.store.state.users) {
		u := r.store.state.users[id]
		if keep(u) {
			out = append(out, &u)
		}
	}
	return out
}
