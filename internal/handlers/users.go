package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lexipedia/internal/config"
	"lexipedia/internal/db"
	"lexipedia/internal/models"
)

// UserHandler handles admin user management.
type UserHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB, cfg *config.Config) *UserHandler {
	return &UserHandler{db: database, cfg: cfg}
}

// ListUsers renders the admin user management page.
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	users, err := h.db.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin_users", MergeBranding(fiber.Map{
		"User":  user,
		"Users": users,
	}, h.cfg))
}

// UpdateUserRole changes a user's role.
func (h *UserHandler) UpdateUserRole(c fiber.Ctx) error {
	admin, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	role := c.FormValue("role")
	if role != models.RoleUser && role != models.RoleModerator && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}

	// Admins cannot demote themselves
	if userID == admin.ID && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "you cannot change your own role")
	}

	if err := h.db.UpdateUserRole(c.Context(), userID, role); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.Redirect().To("/admin/users")
}

// DeleteUser removes a user account.
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	admin, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	if userID == admin.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you cannot delete your own account")
	}

	if err := h.db.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.Redirect().To("/admin/users")
}
