package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecohort/alumni-directory/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Failure      500
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "GitHub username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  messageResponse
// @Failure      500
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Register handles POST /users/new. A returning username refreshes gitUrl,
// userAvatar and lastLogin instead of creating a second record.
//
// @Summary      Register or refresh a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Sign-in identity"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      500
// @Router       /users/new [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, _, err := h.service.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:username. When cohort names an existing cohort
// the user is moved into it.
//
// @Summary      Update a profile and optionally move cohorts
// @Tags         users
// @Accept       json
// @Param        username  path  string                true  "GitHub username"
// @Param        body      body  updateProfileRequest  true  "Profile"
// @Success      200
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Failure      500
// @Router       /users/{username} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.service.UpdateProfile(c.Request().Context(), c.Param("username"), toUpdateProfileInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      200
// @Failure      404  {object}  messageResponse
// @Failure      500
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
