package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

// ListByOwner returns the projects owned by username. An owner without
// projects yields ErrProjectNotFound.
func (s *ProjectService) ListByOwner(ctx context.Context, username string) ([]*domain.Project, error) {
	projects, err := s.repo.ListByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list projects by owner: %w", err)
	}
	if len(projects) == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return projects, nil
}

// ListVisible returns every project username owns or collaborates on.
func (s *ProjectService) ListVisible(ctx context.Context, username string) ([]*domain.Project, error) {
	projects, err := s.repo.ListVisibleTo(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list visible projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Name == "" || p.Owner == "" || p.Description == "" || p.RepoLink == "" {
		return fmt.Errorf("create project: %w: projectName, username, description and repoLink are required", domain.ErrValidation)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return err
	}

	s.logger.Info().Str("project_id", p.ID).Str("owner", p.Owner).Msg("project created")
	return nil
}

// Update overwrites the editable fields. Fields missing from changes are
// cleared, not preserved.
func (s *ProjectService) Update(ctx context.Context, id string, changes domain.ProjectChanges) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if err := s.repo.Replace(ctx, id, changes); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}
