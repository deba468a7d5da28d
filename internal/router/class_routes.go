package router

import (
	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/handler"
	"github.com/magicdancearts/server/internal/middleware"
	"github.com/magicdancearts/server/internal/model"
)

// RegisterClasses wires the /classes endpoints. The approved catalog and
// per-instructor listing are public (the former cached); creation and field
// edits need the instructor role, review actions the admin role.
func RegisterClasses(e *echo.Echo, h *handler.ClassHandler, secret string, lookup middleware.RoleLookup, cache echo.MiddlewareFunc) {
	jwt := middleware.JWTAuth(secret)
	instructor := middleware.RequireRole(lookup, model.RoleInstructor)
	admin := middleware.RequireRole(lookup, model.RoleAdmin)

	e.GET("/classes", h.List, jwt)
	e.GET("/approvedClasses", h.ListApproved, cache)
	e.GET("/classes/:email", h.ListByEmail)
	e.POST("/classes", h.Create, jwt, instructor)
	e.PATCH("/classes/:id", h.Update, jwt, instructor)
	e.PATCH("/classes/approved/:id", h.Approve, jwt, admin)
	e.PATCH("/classes/denied/:id", h.Deny, jwt, admin)
	e.PATCH("/classes/feedback/:id", h.Feedback, jwt, admin)
}
