package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/api/metrics"
	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

// ReconcileService rebuilds cohort alumni sets from the users' cohort
// references, which are the source of truth.
type ReconcileService struct {
	users   ports.UserRepository
	cohorts ports.CohortRepository
	tx      ports.Transactor
	log     zerolog.Logger
}

func NewReconcileService(users ports.UserRepository, cohorts ports.CohortRepository, tx ports.Transactor, log zerolog.Logger) *ReconcileService {
	return &ReconcileService{users: users, cohorts: cohorts, tx: tx, log: log}
}

// Reconcile brings the alumni of cohortID in line with the users referencing
// it, using set additions and removals only. It reports whether a correction
// was written.
func (s *ReconcileService) Reconcile(ctx context.Context, cohortID string) (bool, error) {
	corrected := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		corrected = false

		cohort, err := s.cohorts.FindByID(ctx, cohortID)
		if err != nil {
			return err
		}
		members, err := s.users.ListByCohort(ctx, cohortID)
		if err != nil {
			return err
		}

		stored := make(map[string]bool, len(cohort.Alumni))
		for _, id := range cohort.Alumni {
			stored[id] = true
		}
		want := make(map[string]bool, len(members))
		var missing []string
		for _, u := range members {
			want[u.ID] = true
			if !stored[u.ID] {
				missing = append(missing, u.ID)
			}
		}

		var stale []string
		for _, id := range cohort.Alumni {
			if want[id] {
				continue
			}
			// The user may have joined after the listing above.
			belongs, err := s.references(ctx, id, cohortID)
			if err != nil {
				return err
			}
			if !belongs {
				stale = append(stale, id)
			}
		}
		if len(missing) == 0 && len(stale) == 0 {
			return nil
		}

		s.log.Warn().
			Str("cohort_id", cohortID).
			Strs("missing", missing).
			Strs("stale", stale).
			Msg("alumni drift detected")

		for _, id := range missing {
			if err := s.cohorts.AddAlumnus(ctx, cohortID, id); err != nil {
				return err
			}
		}
		for _, id := range stale {
			if err := s.cohorts.RemoveAlumnus(ctx, cohortID, id); err != nil {
				return err
			}
		}
		corrected = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("reconcile cohort %s: %w", cohortID, err)
	}
	if corrected {
		metrics.ReconcileCorrectionsTotal.Inc()
	}
	return corrected, nil
}

// references reports whether userID currently points at cohortID.
func (s *ReconcileService) references(ctx context.Context, userID, cohortID string) (bool, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.CohortID == cohortID, nil
}

// CohortIDs lists every cohort id, for a full reconciliation sweep.
func (s *ReconcileService) CohortIDs(ctx context.Context) ([]string, error) {
	cohorts, err := s.cohorts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	ids := make([]string, 0, len(cohorts))
	for _, c := range cohorts {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
