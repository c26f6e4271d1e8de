package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/codecohort/alumni-directory/internal/core/domain"
)

func TestCohortHandler_Create(t *testing.T) {
	h := NewCohortHandler(&stubCohortService{
		createFn: func(ctx context.Context, name string) (*domain.Cohort, error) {
			return &domain.Cohort{ID: "c1", Name: name, Alumni: []string{}}, nil
		},
	})

	c, rec := newContext(http.MethodPost, "/cohorts/new", jsonBody(`{"cohortName":"2024A"}`))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "c1" || resp["cohortName"] != "2024A" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if alumni, ok := resp["alumni"].([]any); !ok || len(alumni) != 0 {
		t.Fatalf("expected empty alumni array, got %v", resp["alumni"])
	}
}

func TestCohortHandler_Create_RequiresName(t *testing.T) {
	h := NewCohortHandler(&stubCohortService{})

	c, _ := newContext(http.MethodPost, "/cohorts/new", jsonBody(`{}`))
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCohortHandler_Update_IgnoresAlumni(t *testing.T) {
	var gotID, gotName string
	h := NewCohortHandler(&stubCohortService{
		renameFn: func(ctx context.Context, id, name string) error {
			gotID, gotName = id, name
			return nil
		},
	})

	c, rec := newContext(http.MethodPut, "/cohorts/c1", jsonBody(`{"cohortName":"2024B","alumni":["u9"]}`), "id", "c1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "c1" || gotName != "2024B" {
		t.Fatalf("unexpected rename call: %s %s", gotID, gotName)
	}
}

func TestCohortHandler_Update_NotFound(t *testing.T) {
	h := NewCohortHandler(&stubCohortService{
		renameFn: func(ctx context.Context, id, name string) error { return domain.ErrCohortNotFound },
	})

	c, _ := newContext(http.MethodPut, "/cohorts/nope", jsonBody(`{"cohortName":"x"}`), "id", "nope")
	if err := h.Update(c); !errors.Is(err, domain.ErrCohortNotFound) {
		t.Fatalf("expected ErrCohortNotFound, got %v", err)
	}
}
