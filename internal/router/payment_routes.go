package router

import (
	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/handler"
	"github.com/magicdancearts/server/internal/middleware"
)

// RegisterSelections wires the /selectedClasses endpoints. All of them
// operate on a student's private cart, so all require a token.
func RegisterSelections(e *echo.Echo, h *handler.SelectionHandler, secret string) {
	jwt := middleware.JWTAuth(secret)

	e.GET("/selectedClasses/:email", h.List, jwt)
	e.POST("/selectedClasses", h.Create, jwt)
	e.DELETE("/selectedClasses/:id", h.Delete, jwt)
}

// RegisterPayments wires the payment endpoints: intent creation, payment
// history and the completion workflow. All require a token.
func RegisterPayments(e *echo.Echo, h *handler.PaymentHandler, secret string) {
	jwt := middleware.JWTAuth(secret)

	e.POST("/create-payment-intent", h.CreateIntent, jwt)
	e.GET("/payments/:email", h.List, jwt)
	e.POST("/payments", h.Create, jwt)
}
