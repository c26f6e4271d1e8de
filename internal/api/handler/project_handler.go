package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  domain.Project
// @Failure      500
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// ListByOwner handles GET /projects/:username.
//
// @Summary      List the projects a user owns
// @Tags         projects
// @Produce      json
// @Param        username  path      string  true  "Owner username"
// @Success      200       {array}   domain.Project
// @Failure      404       {object}  messageResponse
// @Failure      500
// @Router       /projects/{username} [get]
func (h *ProjectHandler) ListByOwner(c echo.Context) error {
	projects, err := h.service.ListByOwner(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// ListCollab handles GET /projects/collab/:username.
//
// @Summary      List projects a user owns or collaborates on
// @Tags         projects
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   domain.Project
// @Failure      404       {object}  messageResponse
// @Failure      500
// @Router       /projects/collab/{username} [get]
func (h *ProjectHandler) ListCollab(c echo.Context) error {
	projects, err := h.service.ListVisible(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /project/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id  path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  messageResponse
// @Failure      500
// @Router       /project/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /project/add.
//
// @Summary      Add a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  messageResponse
// @Failure      500
// @Router       /project/add [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project := toProject(req)
	if err := h.service.Create(c.Request().Context(), project); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update handles PUT /project/:id with overwrite semantics: fields missing
// from the body are stored empty.
//
// @Summary      Replace a project's editable fields
// @Tags         projects
// @Accept       json
// @Param        id    path  string                true  "Project id"
// @Param        body  body  updateProjectRequest  true  "Project fields"
// @Success      200
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500
// @Router       /project/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), toProjectChanges(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /project/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Param        id  path  string  true  "Project id"
// @Success      200
// @Failure      404  {object}  messageResponse
// @Failure      500
// @Router       /project/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
