package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/auth"
)

// EmailKey is the context key under which JWTAuth stores the verified
// email claim.
const EmailKey = "email"

// JWTAuth returns middleware that validates a Bearer access token and
// stores the token's email claim in the request context. Routes that read
// or write private data must be wrapped by it; public browse routes are
// not.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "Unauthorized Access"})
			}
			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "Unauthorized Access"})
			}
			c.Set(EmailKey, claims.Email)
			return next(c)
		}
	}
}
