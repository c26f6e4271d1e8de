package ports

import (
	"context"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

// ProjectRepository defines persistence operations for portfolio projects.
type ProjectRepository interface {
	// Create inserts p and assigns its ID.
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByOwner(ctx context.Context, username string) ([]*domain.Project, error)
	// ListVisibleTo returns projects owned by username or naming it in the
	// collaborators text (case-insensitive substring).
	ListVisibleTo(ctx context.Context, username string) ([]*domain.Project, error)
	Replace(ctx context.Context, id string, changes domain.ProjectChanges) error
	Delete(ctx context.Context, id string) error
}
