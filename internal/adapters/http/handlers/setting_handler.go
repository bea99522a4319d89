package handlers

import (
	"errors"

	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingHandler handles system settings endpoints
type SettingHandler struct {
	settingService *services.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// List returns all system settings
// @Summary List system settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Response
// @Router /system-settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// UpdateSettingRequest represents one setting change body
type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Update writes one setting (admin)
// @Summary Update system setting
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateSettingRequest true "Setting"
// @Success 200 {object} response.Response
// @Router /system-settings [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil || req.Key == "" {
		return response.BadRequest(c, "key and value are required")
	}

	err := h.settingService.Update(c.Context(), adminID, &services.UpdateSettingInput{
		Key:   req.Key,
		Value: req.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownSettingKey):
			return response.BadRequest(c, "Unknown setting key")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update setting")
		}
	}

	return response.Success(c, "Setting updated successfully", nil)
}
