package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type stubUserService struct {
	listFn     func(ctx context.Context) ([]*domain.User, error)
	getFn      func(ctx context.Context, username string) (*domain.User, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, bool, error)
	updateFn   func(ctx context.Context, username string, in ports.UpdateProfileInput) (*domain.User, error)
	removeFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }
func (s *stubUserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}
func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, bool, error) {
	return s.registerFn(ctx, in)
}
func (s *stubUserService) UpdateProfile(ctx context.Context, username string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, username, in)
}
func (s *stubUserService) Remove(ctx context.Context, id string) error { return s.removeFn(ctx, id) }

type stubCohortService struct {
	listFn   func(ctx context.Context) ([]*domain.Cohort, error)
	createFn func(ctx context.Context, name string) (*domain.Cohort, error)
	renameFn func(ctx context.Context, id, name string) error
}

func (s *stubCohortService) List(ctx context.Context) ([]*domain.Cohort, error) { return s.listFn(ctx) }
func (s *stubCohortService) Create(ctx context.Context, name string) (*domain.Cohort, error) {
	return s.createFn(ctx, name)
}
func (s *stubCohortService) Rename(ctx context.Context, id, name string) error {
	return s.renameFn(ctx, id, name)
}

type stubProjectService struct {
	listFn        func(ctx context.Context) ([]*domain.Project, error)
	listByOwnerFn func(ctx context.Context, username string) ([]*domain.Project, error)
	listVisibleFn func(ctx context.Context, username string) ([]*domain.Project, error)
	getFn         func(ctx context.Context, id string) (*domain.Project, error)
	createFn      func(ctx context.Context, p *domain.Project) error
	updateFn      func(ctx context.Context, id string, changes domain.ProjectChanges) error
	deleteFn      func(ctx context.Context, id string) error
}

func (s *stubProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.listFn(ctx)
}
func (s *stubProjectService) ListByOwner(ctx context.Context, username string) ([]*domain.Project, error) {
	return s.listByOwnerFn(ctx, username)
}
func (s *stubProjectService) ListVisible(ctx context.Context, username string) ([]*domain.Project, error) {
	return s.listVisibleFn(ctx, username)
}
func (s *stubProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.getFn(ctx, id)
}
func (s *stubProjectService) Create(ctx context.Context, p *domain.Project) error {
	return s.createFn(ctx, p)
}
func (s *stubProjectService) Update(ctx context.Context, id string, changes domain.ProjectChanges) error {
	return s.updateFn(ctx, id, changes)
}
func (s *stubProjectService) Delete(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }

type stubGitHubService struct {
	accessTokenFn func(ctx context.Context, code string) (*ports.UpstreamResponse, error)
	userDataFn    func(ctx context.Context, authorization string) (*ports.UpstreamResponse, error)
}

func (s *stubGitHubService) AccessToken(ctx context.Context, code string) (*ports.UpstreamResponse, error) {
	return s.accessTokenFn(ctx, code)
}
func (s *stubGitHubService) UserData(ctx context.Context, authorization string) (*ports.UpstreamResponse, error) {
	return s.userDataFn(ctx, authorization)
}

// newContext builds an echo context with the validator installed. Path
// params are given as name/value pairs.
func newContext(method, target string, body io.Reader, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
