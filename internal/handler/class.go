package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magicdancearts/server/internal/model"
	"github.com/magicdancearts/server/internal/repository"
)

// ClassStore is the slice of the class repository the handlers need.
type ClassStore interface {
	List(ctx context.Context) ([]model.Class, error)
	ListApproved(ctx context.Context) ([]model.Class, error)
	ListByEmail(ctx context.Context, email string) ([]model.Class, error)
	Insert(ctx context.Context, cls model.Class) (model.Class, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, upd model.ClassUpdate) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status model.ClassStatus) (int64, error)
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (int64, error)
}

// ClassHandler serves the /classes endpoints.
type ClassHandler struct {
	Classes ClassStore
}

func NewClassHandler(classes ClassStore) *ClassHandler {
	return &ClassHandler{Classes: classes}
}

// List handles GET /classes: the full catalog including pending and denied
// classes, for the admin dashboard.
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.Classes.List(c.Request().Context())
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, classes)
}

// ListApproved handles GET /approvedClasses, the public catalog.
func (h *ClassHandler) ListApproved(c echo.Context) error {
	classes, err := h.Classes.ListApproved(c.Request().Context())
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, classes)
}

// ListByEmail handles GET /classes/:email, an instructor's own classes.
func (h *ClassHandler) ListByEmail(c echo.Context) error {
	classes, err := h.Classes.ListByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, classes)
}

// Create handles POST /classes. The instructor role guard runs upstream.
func (h *ClassHandler) Create(c echo.Context) error {
	var cls model.Class
	if err := c.Bind(&cls); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid class body")
	}
	if cls.Email == "" {
		cls.Email = claimedEmail(c)
	}
	saved, err := h.Classes.Insert(c.Request().Context(), cls)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, saved)
}

// Update handles PATCH /classes/:id: full replacement of the editable
// field set. A missing class is 404, not an upsert.
func (h *ClassHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid class id")
	}
	var upd model.ClassUpdate
	if err := c.Bind(&upd); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid class body")
	}
	if err := h.Classes.UpdateFields(c.Request().Context(), id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "Class not found")
		}
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": int64(1)})
}

// Approve handles PATCH /classes/approved/:id.
func (h *ClassHandler) Approve(c echo.Context) error {
	return h.setStatus(c, model.StatusApproved)
}

// Deny handles PATCH /classes/denied/:id.
func (h *ClassHandler) Deny(c echo.Context) error {
	return h.setStatus(c, model.StatusDenied)
}

func (h *ClassHandler) setStatus(c echo.Context, status model.ClassStatus) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid class id")
	}
	modified, err := h.Classes.SetStatus(c.Request().Context(), id, status)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
}

// Feedback handles PATCH /classes/feedback/:id.
func (h *ClassHandler) Feedback(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid class id")
	}
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid feedback body")
	}
	modified, err := h.Classes.SetFeedback(c.Request().Context(), id, body.Feedback)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "Error updating feedback")
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
}
