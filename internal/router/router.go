// Package router declares, per route, whether a request needs a bearer
// token and which role it needs. Earlier revisions applied these guards
// inconsistently; keeping the whole matrix in one package makes each
// route's policy explicit.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/handler"
)

// RegisterRoot registers the liveness and health endpoints.
func RegisterRoot(e *echo.Echo, health *handler.HealthHandler) {
	e.GET("/", handler.Root)
	e.GET("/healthz", health.Serve)
}

// RegisterAuth registers token issuance. Anyone may ask for a token; the
// claims only become useful once a matching user document exists.
func RegisterAuth(e *echo.Echo, t *handler.TokenHandler) {
	e.POST("/jwt", t.Issue)
}
