package handlers

import (
	"errors"

	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists users with pagination (admin)
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	input := &services.ListUsersInput{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	result, err := h.userService.ListUsers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// Get gets one user (admin)
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{"user": user})
}

// UpdateRoleRequest represents a role change body
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole changes a user's role (admin)
// @Summary Update user role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} response.Response
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return response.BadRequest(c, "Role is required")
	}

	user, err := h.userService.UpdateUserByAdmin(c.Context(), userID, adminID, &services.UpdateUserByAdminInput{
		Role: &req.Role,
	})
	if err != nil {
		return h.mapUserError(c, err)
	}

	return response.Success(c, "User role updated successfully", fiber.Map{"user": user})
}

// UpdateStatusRequest represents an activation change body
type UserStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// UpdateStatus activates or deactivates a user (admin)
// @Summary Update user status
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UserStatusRequest true "Activation flag"
// @Success 200 {object} response.Response
// @Router /users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UserStatusRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return response.BadRequest(c, "is_active is required")
	}

	user, err := h.userService.UpdateUserByAdmin(c.Context(), userID, adminID, &services.UpdateUserByAdminInput{
		IsActive: req.IsActive,
	})
	if err != nil {
		return h.mapUserError(c, err)
	}

	return response.Success(c, "User status updated successfully", fiber.Map{"user": user})
}

// Delete soft-deletes a user (admin)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	userID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), userID, adminID); err != nil {
		return h.mapUserError(c, err)
	}

	return response.Success(c, "User deleted successfully", nil)
}

func (h *UserHandler) mapUserError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, services.ErrCannotChangeOwnRole):
		return response.Forbidden(c, "You cannot change your own role")
	case errors.Is(err, services.ErrCannotDeleteSelf):
		return response.Forbidden(c, "You cannot delete your own account")
	case errors.Is(err, services.ErrInvalidRole):
		return response.BadRequest(c, "Role must be DONOR, HOSPITAL or ADMIN")
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return response.Conflict(c, "Email already exists")
	default:
		return response.InternalServerError(c, "Failed to update user")
	}
}
