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

// SelectionStore is the slice of the selection repository the handlers
// need.
type SelectionStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.Selection, error)
	Insert(ctx context.Context, sel model.Selection) (model.Selection, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// SelectionHandler serves the /selectedClasses endpoints.
type SelectionHandler struct {
	Selections SelectionStore
}

func NewSelectionHandler(selections SelectionStore) *SelectionHandler {
	return &SelectionHandler{Selections: selections}
}

// List handles GET /selectedClasses/:email.
func (h *SelectionHandler) List(c echo.Context) error {
	selections, err := h.Selections.ListByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, selections)
}

// Create handles POST /selectedClasses.
func (h *SelectionHandler) Create(c echo.Context) error {
	var sel model.Selection
	if err := c.Bind(&sel); err != nil || sel.ClassID == "" {
		return errJSON(c, http.StatusBadRequest, "classId is required")
	}
	if sel.Email == "" {
		sel.Email = claimedEmail(c)
	}
	saved, err := h.Selections.Insert(c.Request().Context(), sel)
	if err != nil {
		if errors.Is(err, repository.ErrClassTaken) {
			return errJSON(c, http.StatusConflict, "Class already selected!")
		}
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /selectedClasses/:id.
func (h *SelectionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid selection id")
	}
	deleted, err := h.Selections.Delete(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": deleted})
}
