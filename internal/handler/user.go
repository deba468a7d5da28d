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

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Insert(ctx context.Context, u model.User) (model.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserHandler serves the /users and /instructors endpoints.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, users)
}

// ListInstructors handles GET /instructors.
func (h *UserHandler) ListInstructors(c echo.Context) error {
	users, err := h.Users.ListByRole(c.Request().Context(), model.RoleInstructor)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users: first registration of an identity. A
// duplicate email performs no write and answers exactly the message the
// frontend matches on.
func (h *UserHandler) Create(c echo.Context) error {
	var u model.User
	if err := c.Bind(&u); err != nil || u.Email == "" {
		return errJSON(c, http.StatusBadRequest, "email is required")
	}
	saved, err := h.Users.Insert(c.Request().Context(), u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists!"})
		}
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, saved)
}

// IsAdmin handles GET /users/admin/:email. Asking about anyone but the
// token's own email always answers false.
func (h *UserHandler) IsAdmin(c echo.Context) error {
	email := c.Param("email")
	if claimedEmail(c) != email {
		return c.JSON(http.StatusOK, echo.Map{"admin": false})
	}
	u, err := h.Users.FindByEmail(c.Request().Context(), email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": u.Role == model.RoleAdmin})
}

// IsInstructor handles GET /users/instructor/:email.
func (h *UserHandler) IsInstructor(c echo.Context) error {
	email := c.Param("email")
	if claimedEmail(c) != email {
		return c.JSON(http.StatusOK, echo.Map{"instructor": false})
	}
	u, err := h.Users.FindByEmail(c.Request().Context(), email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"instructor": u.Role == model.RoleInstructor})
}

// MakeAdmin handles PATCH /users/admin/:id.
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	return h.setRole(c, model.RoleAdmin)
}

// MakeInstructor handles PATCH /users/instructor/:id.
func (h *UserHandler) MakeInstructor(c echo.Context) error {
	return h.setRole(c, model.RoleInstructor)
}

func (h *UserHandler) setRole(c echo.Context, role model.Role) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid user id")
	}
	modified, err := h.Users.SetRole(c.Request().Context(), id, role)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid user id")
	}
	deleted, err := h.Users.Delete(c.Request().Context(), id)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": deleted})
}
