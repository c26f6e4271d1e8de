package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type CohortService struct {
	repo ports.CohortRepository
	log  zerolog.Logger
}

func NewCohortService(repo ports.CohortRepository, log zerolog.Logger) *CohortService {
	return &CohortService{repo: repo, log: log}
}

func (s *CohortService) List(ctx context.Context) ([]*domain.Cohort, error) {
	return s.repo.List(ctx)
}

// Create stores an empty cohort. Names are not required to be unique.
func (s *CohortService) Create(ctx context.Context, name string) (*domain.Cohort, error) {
	if name == "" {
		return nil, fmt.Errorf("create cohort: %w: cohortName is required", domain.ErrValidation)
	}

	c, err := s.repo.Create(ctx, name)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create cohort")
		return nil, err
	}

	s.log.Info().Str("cohort_id", c.ID).Str("cohort_name", name).Msg("cohort created")
	return c, nil
}

// Rename changes the cohort name. Alumni are never written here; an empty
// name leaves the cohort unchanged.
func (s *CohortService) Rename(ctx context.Context, id, name string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("rename cohort: %w", err)
	}
	if name == "" {
		return nil
	}
	if err := s.repo.Rename(ctx, id, name); err != nil {
		return fmt.Errorf("rename cohort: %w", err)
	}
	return nil
}
