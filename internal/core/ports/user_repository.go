package ports

import (
	"context"
	"time"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

// UserRepository defines persistence operations for directory users.
type UserRepository interface {
	// Upsert registers username or refreshes its gitUrl, avatar and lastLogin
	// in a single atomic write. created reports whether a new record was made.
	Upsert(ctx context.Context, username, gitURL, avatar string, at time.Time) (user *domain.User, created bool, err error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListByCohort returns the users whose cohort reference equals cohortID.
	ListByCohort(ctx context.Context, cohortID string) ([]*domain.User, error)
	// UpdateProfile overwrites the profile fields and lastLogin. When cohortID
	// is non-nil the cohort reference is set as well.
	UpdateProfile(ctx context.Context, id string, profile domain.Profile, cohortID *string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
