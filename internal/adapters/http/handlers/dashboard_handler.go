package handlers

import (
	"errors"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Auto serves the dashboard matching the caller's role
// @Summary Role dashboard
// @Description Returns the admin, donor or hospital dashboard based on the caller's role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Auto(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	switch role {
	case models.RoleAdmin:
		return h.Admin(c)
	case models.RoleHospital:
		return h.Hospital(c)
	default:
		return h.Donor(c)
	}
}

// Admin serves the admin dashboard
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build admin dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Donor serves the donor dashboard
// @Summary Donor dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/donor [get]
func (h *DashboardHandler) Donor(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetDonorDashboard(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrDonorProfileMissing) {
			return response.Forbidden(c, "No donor profile for this account")
		}
		return response.InternalServerError(c, "Failed to build donor dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Hospital serves the hospital dashboard
// @Summary Hospital dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/hospital [get]
func (h *DashboardHandler) Hospital(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetHospitalDashboard(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrHospitalProfileMissing) {
			return response.Forbidden(c, "No hospital profile for this account")
		}
		return response.InternalServerError(c, "Failed to build hospital dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}
