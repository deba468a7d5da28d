package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/model"
)

// RoleLookup resolves the current stored role for an email. The guard takes
// it as an explicit dependency rather than closing over a database client,
// so tests and wiring stay in control of where roles come from.
type RoleLookup func(ctx context.Context, email string) (model.Role, error)

// RequireRole returns middleware that admits a request only when the
// authenticated user's stored role equals the required one. It reads the
// role fresh on every request, so demotions and promotions apply
// immediately regardless of what an outstanding token says. JWTAuth must
// run first.
func RequireRole(lookup RoleLookup, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(EmailKey).(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "Unauthorized Access"})
			}
			current, err := lookup(c.Request().Context(), email)
			if err != nil || current != role {
				return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "Forbidden Access"})
			}
			return next(c)
		}
	}
}
