package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

// GitHubService relays the OAuth code exchange and profile lookup. Replies are
// returned as received; nothing is validated or stored.
type GitHubService struct {
	gateway ports.GitHubGateway
	log     zerolog.Logger
}

func NewGitHubService(gateway ports.GitHubGateway, log zerolog.Logger) *GitHubService {
	return &GitHubService{gateway: gateway, log: log}
}

func (s *GitHubService) AccessToken(ctx context.Context, code string) (*ports.UpstreamResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("access token: %w: code is required", domain.ErrValidation)
	}
	resp, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	s.log.Debug().Int("status", resp.StatusCode).Msg("oauth code exchanged")
	return resp, nil
}

func (s *GitHubService) UserData(ctx context.Context, authorization string) (*ports.UpstreamResponse, error) {
	resp, err := s.gateway.FetchUser(ctx, authorization)
	if err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}
	return resp, nil
}
