package router

import (
	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/handler"
	"github.com/magicdancearts/server/internal/middleware"
	"github.com/magicdancearts/server/internal/model"
)

// RegisterUsers wires the /users and /instructors endpoints. Role
// mutations and deletion are admin-only; the role probes are available to
// any authenticated user; the instructor listing is public and cached.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, secret string, lookup middleware.RoleLookup, cache echo.MiddlewareFunc) {
	jwt := middleware.JWTAuth(secret)
	admin := middleware.RequireRole(lookup, model.RoleAdmin)

	e.GET("/users", u.List, jwt)
	e.POST("/users", u.Create)
	e.GET("/users/admin/:email", u.IsAdmin, jwt)
	e.GET("/users/instructor/:email", u.IsInstructor, jwt)
	e.PATCH("/users/admin/:id", u.MakeAdmin, jwt, admin)
	e.PATCH("/users/instructor/:id", u.MakeInstructor, jwt, admin)
	e.DELETE("/users/:id", u.Delete, jwt, admin)

	e.GET("/instructors", u.ListInstructors, cache)
}
