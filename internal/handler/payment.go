package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/model"
	"github.com/magicdancearts/server/internal/repository"
	"github.com/magicdancearts/server/internal/service"
)

// PaymentStore is the slice of the payment repository the handlers need.
type PaymentStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

// IntentCreator requests a payment intent from the gateway.
type IntentCreator interface {
	CreateIntent(price float64) (string, error)
}

// PaymentCompleter runs the payment completion transaction.
type PaymentCompleter interface {
	CompletePayment(ctx context.Context, p model.Payment) (service.CompletedPayment, error)
}

// PaymentHandler serves the payment endpoints.
type PaymentHandler struct {
	Payments  PaymentStore
	Intents   IntentCreator
	Completer PaymentCompleter
}

func NewPaymentHandler(payments PaymentStore, intents IntentCreator, completer PaymentCompleter) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Intents: intents, Completer: completer}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&body); err != nil || body.Price <= 0 {
		return errJSON(c, http.StatusBadRequest, "a positive price is required")
	}
	secret, err := h.Intents.CreateIntent(body.Price)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not create payment intent")
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// List handles GET /payments/:email, newest first.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.Payments.ListByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, payments)
}

// Create handles POST /payments: the completion workflow after the client
// confirmed the intent with the gateway.
func (h *PaymentHandler) Create(c echo.Context) error {
	var p model.Payment
	if err := c.Bind(&p); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payment body")
	}
	if p.TransactionID == "" || p.SelectionID == "" || p.ClassID == "" {
		return errJSON(c, http.StatusBadRequest, "transactionId, selectionId and classId are required")
	}
	if p.Email == "" {
		p.Email = claimedEmail(c)
	}

	result, err := h.Completer.CompletePayment(c.Request().Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePayment):
			return errJSON(c, http.StatusConflict, "Payment already recorded")
		case errors.Is(err, repository.ErrSoldOut):
			return errJSON(c, http.StatusConflict, "No seats available")
		case errors.Is(err, repository.ErrNotFound):
			return errJSON(c, http.StatusNotFound, "Class or selection not found")
		default:
			return errJSON(c, http.StatusInternalServerError, "could not record payment")
		}
	}
	return c.JSON(http.StatusOK, result)
}
