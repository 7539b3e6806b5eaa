package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: the subject must be
// non-empty (presence proves the middleware ran and the token carried an
// identity). Ownership and role resolution happen in the service layer.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get("subject").(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subject, nil
}
