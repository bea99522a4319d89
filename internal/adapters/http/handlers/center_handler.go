package handlers

import (
	"errors"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CenterHandler handles donation center endpoints
type CenterHandler struct {
	centerService *services.CenterService
}

// NewCenterHandler creates a new center handler
func NewCenterHandler(centerService *services.CenterService) *CenterHandler {
	return &CenterHandler{centerService: centerService}
}

// List lists donation centers. Admins see inactive centers too.
// @Summary List donation centers
// @Tags Centers
// @Produce json
// @Success 200 {object} response.Response
// @Router /centers [get]
func (h *CenterHandler) List(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	includeInactive := role == models.RoleAdmin

	centers, err := h.centerService.List(c.Context(), includeInactive)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation centers")
	}

	return response.Success(c, "Donation centers retrieved successfully", centers)
}

// Get gets one donation center
// @Summary Get donation center
// @Tags Centers
// @Produce json
// @Param id path int true "Center ID"
// @Success 200 {object} response.Response
// @Router /centers/{id} [get]
func (h *CenterHandler) Get(c *fiber.Ctx) error {
	centerID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid center ID")
	}

	center, err := h.centerService.GetByID(c.Context(), centerID)
	if err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return response.NotFound(c, "Donation center not found")
		}
		return response.InternalServerError(c, "Failed to get donation center")
	}

	return response.Success(c, "Donation center retrieved successfully", center)
}

// CenterRequest represents center create/update body
type CenterRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	OpenHours string `json:"open_hours"`
	IsActive  *bool  `json:"is_active"`
}

// Create creates a donation center (admin)
// @Summary Create donation center
// @Tags Centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CenterRequest true "Center data"
// @Success 201 {object} response.Response
// @Router /centers [post]
func (h *CenterHandler) Create(c *fiber.Ctx) error {
	var req CenterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	center, err := h.centerService.Create(c.Context(), &services.CenterInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		OpenHours: req.OpenHours,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create donation center")
	}

	return response.Created(c, "Donation center created successfully", center)
}

// Update updates a donation center (admin)
// @Summary Update donation center
// @Tags Centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Center ID"
// @Param body body CenterRequest true "Center data"
// @Success 200 {object} response.Response
// @Router /centers/{id} [put]
func (h *CenterHandler) Update(c *fiber.Ctx) error {
	centerID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid center ID")
	}

	var req CenterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	center, err := h.centerService.Update(c.Context(), centerID, &services.CenterInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		OpenHours: req.OpenHours,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return response.NotFound(c, "Donation center not found")
		}
		return response.InternalServerError(c, "Failed to update donation center")
	}

	return response.Success(c, "Donation center updated successfully", center)
}

// Delete deletes a donation center (admin)
// @Summary Delete donation center
// @Tags Centers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Center ID"
// @Success 200 {object} response.Response
// @Router /centers/{id} [delete]
func (h *CenterHandler) Delete(c *fiber.Ctx) error {
	centerID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid center ID")
	}

	if err := h.centerService.Delete(c.Context(), centerID); err != nil {
		if errors.Is(err, services.ErrCenterNotFound) {
			return response.NotFound(c, "Donation center not found")
		}
		return response.InternalServerError(c, "Failed to delete donation center")
	}

	return response.Success(c, "Donation center deleted successfully", nil)
}
