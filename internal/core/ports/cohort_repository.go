package ports

import (
	"context"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

// CohortRepository defines persistence operations for cohorts. Membership is
// changed with set primitives only, never by rewriting a fetched document.
type CohortRepository interface {
	Create(ctx context.Context, name string) (*domain.Cohort, error)
	FindByID(ctx context.Context, id string) (*domain.Cohort, error)
	List(ctx context.Context) ([]*domain.Cohort, error)
	Rename(ctx context.Context, id, name string) error
	// AddAlumnus adds userID to the alumni set; adding an existing member is a no-op.
	AddAlumnus(ctx context.Context, cohortID, userID string) error
	// RemoveAlumnus pulls userID from the alumni set; a missing member is a no-op.
	RemoveAlumnus(ctx context.Context, cohortID, userID string) error
}
