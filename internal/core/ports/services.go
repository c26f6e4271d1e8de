package ports

import (
	"context"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

// UpdateProfileInput carries a PUT /users/:username payload. CohortID may be
// empty or reference a cohort that does not exist; the profile is updated
// either way.
type UpdateProfileInput struct {
	Profile  domain.Profile
	CohortID string
}

// RegisterInput carries a POST /users/new payload.
type RegisterInput struct {
	Username   string
	GitURL     string
	UserAvatar string
}

// UserService defines the user use cases, including cohort moves.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, bool, error)
	UpdateProfile(ctx context.Context, username string, in UpdateProfileInput) (*domain.User, error)
	Remove(ctx context.Context, id string) error
}

// CohortService defines the cohort use cases.
type CohortService interface {
	List(ctx context.Context) ([]*domain.Cohort, error)
	Create(ctx context.Context, name string) (*domain.Cohort, error)
	Rename(ctx context.Context, id, name string) error
}

// ProjectService defines the project use cases.
type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	ListByOwner(ctx context.Context, username string) ([]*domain.Project, error)
	ListVisible(ctx context.Context, username string) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id string, changes domain.ProjectChanges) error
	Delete(ctx context.Context, id string) error
}

// GitHubService relays OAuth calls.
type GitHubService interface {
	AccessToken(ctx context.Context, code string) (*UpstreamResponse, error)
	UserData(ctx context.Context, authorization string) (*UpstreamResponse, error)
}
