// Package handler exposes the HTTP handlers for the API. Store
// dependencies are declared as small interfaces in this package and
// satisfied by the mongo repositories.
package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magicdancearts/server/internal/middleware"
)

// errJSON writes the error envelope the frontend expects.
func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": true, "message": msg})
}

// claimedEmail returns the email the auth middleware stored, or "".
func claimedEmail(c echo.Context) string {
	email, _ := c.Get(middleware.EmailKey).(string)
	return email
}

// pathID parses the :id path parameter as an ObjectID.
func pathID(c echo.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param("id"))
}
