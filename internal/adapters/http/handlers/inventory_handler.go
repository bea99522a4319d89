package handlers

import (
	"errors"

	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles blood inventory endpoints
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List lists blood units with optional filters
// @Summary List blood units
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param blood_type query string false "Blood type filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	input := &services.ListUnitsInput{
		BloodType: c.Query("blood_type"),
		Status:    c.Query("status"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 20),
	}

	result, err := h.inventoryService.ListUnits(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Invalid blood type filter")
		case errors.Is(err, domain.ErrInvalidUnitStatus):
			return response.BadRequest(c, "Invalid status filter")
		default:
			return response.InternalServerError(c, "Failed to list blood units")
		}
	}

	return response.Success(c, "Blood units retrieved successfully", result)
}

// Summary returns available unit counts per blood type
// @Summary Inventory summary
// @Tags Inventory
// @Produce json
// @Success 200 {object} response.Response
// @Router /inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.inventoryService.Summary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build inventory summary")
	}

	return response.Success(c, "Inventory summary retrieved successfully", summary)
}

// Get returns one blood unit
// @Summary Get blood unit
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Success 200 {object} response.Response
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	unitID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	unit, err := h.inventoryService.GetUnit(c.Context(), unitID)
	if err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			return response.NotFound(c, "Blood unit not found")
		}
		return response.InternalServerError(c, "Failed to get blood unit")
	}

	return response.Success(c, "Blood unit retrieved successfully", unit)
}

// CreateUnitRequest represents unit registration request body
type CreateUnitRequest struct {
	BloodType    string `json:"blood_type"`
	DonationDate string `json:"donation_date"`
	ExpiryDate   string `json:"expiry_date"`
	DonorID      *uint  `json:"donor_id"`
	Location     string `json:"location"`
}

// Create registers a new blood unit (admin)
// @Summary Register blood unit
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUnitRequest true "Unit data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.CreateUnitInput{
		BloodType:    req.BloodType,
		DonationDate: req.DonationDate,
		ExpiryDate:   req.ExpiryDate,
		DonorID:      req.DonorID,
		Location:     req.Location,
	}

	unit, err := h.inventoryService.CreateUnit(c.Context(), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to register blood unit")
		}
	}

	return response.Created(c, "Blood unit registered successfully", unit)
}

// UpdateStatusRequest represents unit status change request body
type UpdateStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// UpdateStatus moves a unit along the lifecycle (admin)
// @Summary Update unit status
// @Description Move a unit forward in the lifecycle; backward moves and exits from terminal states are refused
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/{id}/status [put]
func (h *InventoryHandler) UpdateStatus(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	unitID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateStatusInput{
		Status:   req.Status,
		Location: req.Location,
	}

	unit, err := h.inventoryService.UpdateStatus(c.Context(), adminID, unitID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnitNotFound):
			return response.NotFound(c, "Blood unit not found")
		case errors.Is(err, domain.ErrInvalidUnitStatus):
			return response.BadRequest(c, "Unknown unit status")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.Conflict(c, "Status change is not a legal lifecycle transition")
		default:
			return response.InternalServerError(c, "Failed to update unit status")
		}
	}

	return response.Success(c, "Unit status updated successfully", unit)
}

// History returns a unit's audit trail
// @Summary Unit history
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Success 200 {object} response.Response
// @Router /inventory/{id}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	unitID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	history, err := h.inventoryService.History(c.Context(), unitID)
	if err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			return response.NotFound(c, "Blood unit not found")
		}
		return response.InternalServerError(c, "Failed to get unit history")
	}

	return response.Success(c, "Unit history retrieved successfully", history)
}
