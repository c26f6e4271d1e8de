package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type CohortHandler struct {
	service ports.CohortService
}

func NewCohortHandler(service ports.CohortService) *CohortHandler {
	return &CohortHandler{service: service}
}

// List handles GET /cohorts.
//
// @Summary      List cohorts
// @Tags         cohorts
// @Produce      json
// @Success      200  {array}   domain.Cohort
// @Failure      500
// @Router       /cohorts [get]
func (h *CohortHandler) List(c echo.Context) error {
	cohorts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cohorts)
}

// Create handles POST /cohorts/new.
//
// @Summary      Create an empty cohort
// @Tags         cohorts
// @Accept       json
// @Produce      json
// @Param        body  body      createCohortRequest  true  "Cohort"
// @Success      200   {object}  domain.Cohort
// @Failure      400   {object}  messageResponse
// @Failure      500
// @Router       /cohorts/new [post]
func (h *CohortHandler) Create(c echo.Context) error {
	var req createCohortRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cohort, err := h.service.Create(c.Request().Context(), req.CohortName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cohort)
}

// Update handles PUT /cohorts/:id. Only cohortName is applied; alumni are
// managed through user profile updates.
//
// @Summary      Rename a cohort
// @Tags         cohorts
// @Accept       json
// @Param        id    path  string               true  "Cohort id"
// @Param        body  body  updateCohortRequest  true  "Cohort fields"
// @Success      200
// @Failure      404   {object}  messageResponse
// @Failure      500
// @Router       /cohorts/{id} [put]
func (h *CohortHandler) Update(c echo.Context) error {
	var req updateCohortRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.service.Rename(c.Request().Context(), c.Param("id"), req.CohortName); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
