package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecohort/alumni-directory/internal/core/ports"
)

// OAuthHandler relays GitHub replies to the client byte for byte.
type OAuthHandler struct {
	service ports.GitHubService
}

func NewOAuthHandler(service ports.GitHubService) *OAuthHandler {
	return &OAuthHandler{service: service}
}

// AccessToken handles GET /getAccessToken?code=...
//
// @Summary      Exchange an OAuth code for a GitHub access token
// @Tags         oauth
// @Produce      json
// @Param        code  query  string  true  "OAuth authorization code"
// @Success      200   {object}  map[string]any  "GitHub token response, unmodified"
// @Failure      400   {object}  messageResponse
// @Failure      500
// @Router       /getAccessToken [get]
func (h *OAuthHandler) AccessToken(c echo.Context) error {
	resp, err := h.service.AccessToken(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// UserData handles GET /getUserData, forwarding the Authorization header.
//
// @Summary      Fetch the GitHub profile for the caller's token
// @Tags         oauth
// @Produce      json
// @Param        Authorization  header  string  true  "e.g. Bearer gho_..."
// @Success      200  {object}  map[string]any  "GitHub user response, unmodified"
// @Failure      500
// @Router       /getUserData [get]
func (h *OAuthHandler) UserData(c echo.Context) error {
	resp, err := h.service.UserData(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return err
	}
	return relay(c, resp)
}

func relay(c echo.Context, resp *ports.UpstreamResponse) error {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return c.Blob(status, contentType, resp.Body)
}
