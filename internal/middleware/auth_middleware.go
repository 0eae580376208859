package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CronAuth rejects scan triggers whose bearer token does not match the
// configured secret, before any work begins.
func CronAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			expected := "Bearer " + secret
			if secret == "" || subtle.ConstantTimeCompare([]byte(auth), []byte(expected)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized",
				})
			}
			return next(c)
		}
	}
}
