package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

const fullProject = `{
	"projectName":"Directory",
	"username":"bob",
	"collaborators":"alice, carol",
	"description":"alumni site",
	"deploymentLink":"https://d.example",
	"deploymentImage":"https://img.example/p.png",
	"userAvatarUrl":"https://avatars.example/bob",
	"repoLink":"https://github.com/bob/directory"
}`

func TestProjectHandler_Create(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{
		createFn: func(ctx context.Context, p *domain.Project) error {
			if p.Owner != "bob" || p.RepoLink == "" || p.Collaborators != "alice, carol" {
				t.Fatalf("unexpected project: %+v", p)
			}
			p.ID = "p1"
			return nil
		},
	})

	c, rec := newContext(http.MethodPost, "/project/add", jsonBody(fullProject))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "p1" || resp["projectName"] != "Directory" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProjectHandler_Create_RequiresRepoLink(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	body := `{"projectName":"x","username":"bob","description":"d","userAvatarUrl":"a"}`
	c, _ := newContext(http.MethodPost, "/project/add", jsonBody(body))
	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectHandler_Update_MissingRepoLinkIsCleared(t *testing.T) {
	var got domain.ProjectChanges
	h := NewProjectHandler(&stubProjectService{
		updateFn: func(ctx context.Context, id string, changes domain.ProjectChanges) error {
			got = changes
			return nil
		},
	})

	c, rec := newContext(http.MethodPut, "/project/p1", jsonBody(`{"projectName":"Directory v2","description":"d"}`), "id", "p1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.RepoLink != "" || got.Collaborators != "" || got.Name != "Directory v2" {
		t.Fatalf("expected overwrite with empty omitted fields, got %+v", got)
	}
}

func TestProjectHandler_ListByOwner_Empty(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{
		listByOwnerFn: func(ctx context.Context, username string) ([]*domain.Project, error) {
			return nil, domain.ErrProjectNotFound
		},
	})

	c, _ := newContext(http.MethodGet, "/projects/nobody", nil, "username", "nobody")
	if err := h.ListByOwner(c); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectHandler_ListCollab(t *testing.T) {
	var gotUser string
	h := NewProjectHandler(&stubProjectService{
		listVisibleFn: func(ctx context.Context, username string) ([]*domain.Project, error) {
			gotUser = username
			return []*domain.Project{{ID: "p1", Owner: "bob", Collaborators: "Alice, Carol"}}, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/projects/collab/alice", nil, "username", "alice")
	if err := h.ListCollab(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if gotUser != "alice" || len(resp) != 1 || resp[0]["username"] != "bob" {
		t.Fatalf("unexpected result: %s %+v", gotUser, resp)
	}
}

func TestProjectHandler_GetAndDelete(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{
		getFn: func(ctx context.Context, id string) (*domain.Project, error) {
			return nil, domain.ErrProjectNotFound
		},
		deleteFn: func(ctx context.Context, id string) error {
			if id != "p1" {
				return domain.ErrProjectNotFound
			}
			return nil
		},
	})

	c, _ := newContext(http.MethodGet, "/project/missing", nil, "id", "missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	c, rec := newContext(http.MethodDelete, "/project/p1", nil, "id", "p1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
