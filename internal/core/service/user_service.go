package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/api/metrics"
	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

// ReconcileQueue schedules a cohort for an alumni rebuild.
type ReconcileQueue interface {
	Enqueue(cohortID string)
}

// UserService implements registration, profile updates (including cohort
// moves) and removal. It owns the user/cohort membership invariant.
type UserService struct {
	users   ports.UserRepository
	cohorts ports.CohortRepository
	tx      ports.Transactor
	locker  ports.Locker
	queue   ReconcileQueue
	log     zerolog.Logger
	now     func() time.Time
}

// NewUserService wires a UserService. queue may be nil when no background
// reconciliation is running.
func NewUserService(
	users ports.UserRepository,
	cohorts ports.CohortRepository,
	tx ports.Transactor,
	locker ports.Locker,
	queue ReconcileQueue,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:   users,
		cohorts: cohorts,
		tx:      tx,
		locker:  locker,
		queue:   queue,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// Register creates the user on first sign-in, or refreshes gitUrl, avatar and
// lastLogin for a returning one. Other profile fields are left untouched.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, bool, error) {
	if in.Username == "" || in.GitURL == "" || in.UserAvatar == "" {
		return nil, false, fmt.Errorf("register user: %w: username, gitUrl and userAvatar are required", domain.ErrValidation)
	}

	user, created, err := s.users.Upsert(ctx, in.Username, in.GitURL, in.UserAvatar, s.now())
	if err != nil {
		return nil, false, fmt.Errorf("register user: %w", err)
	}

	result := "updated"
	if created {
		result = "created"
	}
	metrics.UsersRegisteredTotal.WithLabelValues(result).Inc()
	s.log.Info().Str("username", in.Username).Str("result", result).Msg("user registered")

	return user, created, nil
}

// move records the cohort ids touched by a reassignment.
type move struct {
	from string
	to   string
}

// UpdateProfile overwrites the user's profile fields and, when in.CohortID
// names an existing cohort, moves the user into it: the user's reference is
// set, the id is pulled from the previous cohort and added to the new one.
// An unknown or empty cohort id leaves membership untouched.
func (s *UserService) UpdateProfile(ctx context.Context, username string, in ports.UpdateProfileInput) (*domain.User, error) {
	release, err := s.lock(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	defer release()

	var mv *move
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		mv = nil

		current, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		target, err := s.targetCohort(ctx, in.CohortID)
		if err != nil {
			return err
		}

		now := s.now()
		if target == nil {
			return s.users.UpdateProfile(ctx, current.ID, in.Profile, nil, now)
		}

		mv = &move{from: current.CohortID, to: target.ID}
		if err := s.users.UpdateProfile(ctx, current.ID, in.Profile, &target.ID, now); err != nil {
			return err
		}
		if current.InCohort() && current.CohortID != target.ID {
			if err := s.cohorts.RemoveAlumnus(ctx, current.CohortID, current.ID); err != nil {
				return err
			}
		}
		return s.cohorts.AddAlumnus(ctx, target.ID, current.ID)
	})
	if err != nil {
		metrics.CohortMovesTotal.WithLabelValues("failed").Inc()
		if mv != nil && !s.tx.Atomic() {
			s.scheduleReconcile(mv.from, mv.to)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if mv != nil {
		metrics.CohortMovesTotal.WithLabelValues("moved").Inc()
		s.log.Info().
			Str("username", username).
			Str("from_cohort", mv.from).
			Str("to_cohort", mv.to).
			Msg("user moved to cohort")
	} else {
		metrics.CohortMovesTotal.WithLabelValues("profile_only").Inc()
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("update profile: reload: %w", err)
	}
	return user, nil
}

// Remove deletes the user and pulls it from its cohort's alumni.
func (s *UserService) Remove(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}

	release, err := s.lock(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	defer release()

	var cohortID string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		cohortID = current.CohortID
		if current.InCohort() {
			if err := s.cohorts.RemoveAlumnus(ctx, current.CohortID, current.ID); err != nil {
				return err
			}
		}
		return s.users.Delete(ctx, current.ID)
	})
	if err != nil {
		if cohortID != "" && !s.tx.Atomic() {
			s.scheduleReconcile(cohortID)
		}
		return fmt.Errorf("remove user: %w", err)
	}

	metrics.UsersRemovedTotal.Inc()
	s.log.Info().Str("user_id", id).Str("username", user.Username).Str("cohort", cohortID).Msg("user removed")
	return nil
}

// targetCohort resolves the cohort a profile update points at. A missing or
// unknown id yields nil without error.
func (s *UserService) targetCohort(ctx context.Context, id string) (*domain.Cohort, error) {
	if id == "" {
		return nil, nil
	}
	c, err := s.cohorts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCohortNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *UserService) lock(ctx context.Context, username string) (func(), error) {
	start := time.Now()
	release, err := s.locker.Lock(ctx, "user:"+username)
	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
	return release, err
}

func (s *UserService) scheduleReconcile(cohortIDs ...string) {
	if s.queue == nil {
		s.log.Warn().Strs("cohorts", cohortIDs).Msg("membership write failed without rollback and no reconciler is running")
		return
	}
	for _, id := range cohortIDs {
		if id != "" {
			s.queue.Enqueue(id)
		}
	}
}
