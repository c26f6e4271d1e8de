package ports

import "context"

// UpstreamResponse is an opaque reply from the OAuth provider. The body is
// relayed to the caller without being decoded.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// GitHubGateway talks to GitHub's OAuth and REST endpoints.
type GitHubGateway interface {
	ExchangeCode(ctx context.Context, code string) (*UpstreamResponse, error)
	FetchUser(ctx context.Context, authorization string) (*UpstreamResponse, error)
}
