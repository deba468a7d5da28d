package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/magicdancearts/server/internal/auth"
)

// TokenHandler issues access tokens. Identity is asserted by the client's
// upstream auth provider; this endpoint only signs the claim.
type TokenHandler struct {
	Secret string
}

type tokenReq struct {
	Email string `json:"email"`
}

// Issue handles POST /jwt.
func (h *TokenHandler) Issue(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return errJSON(c, http.StatusBadRequest, "email is required")
	}
	token, err := auth.IssueToken(req.Email, h.Secret, auth.TokenTTL)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Root handles GET /, the liveness string the original frontend polls.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Magic Dance Arts server is running...")
}

// HealthHandler reports service and database health.
type HealthHandler struct {
	Client *mongo.Client
}

// Serve handles GET /healthz.
func (h *HealthHandler) Serve(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "database": "disconnected"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "database": "connected"})
}
