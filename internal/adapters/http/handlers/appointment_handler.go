package handlers

import (
	"context"
	"errors"
	"strconv"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles donation appointment endpoints
type AppointmentHandler struct {
	apptService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(apptService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService}
}

// BookRequest represents appointment booking request body
type BookRequest struct {
	CenterID uint   `json:"center_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Notes    string `json:"notes"`
}

// Book books a donation appointment
// @Summary Book appointment
// @Description Book a donation appointment at a center within the booking window
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.BookInput{
		CenterID: req.CenterID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Notes:    req.Notes,
	}

	appt, err := h.apptService.Book(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrInvalidTimeSlot):
			return response.BadRequest(c, "Time slot must be one of the nine daily slots")
		case errors.Is(err, services.ErrDateOutsideWindow):
			return response.BadRequest(c, "Date must be within the next 30 days")
		case errors.Is(err, services.ErrCenterNotFound):
			return response.NotFound(c, "Donation center not found")
		case errors.Is(err, services.ErrCenterInactive):
			return response.BadRequest(c, "Donation center is not accepting appointments")
		case errors.Is(err, services.ErrSlotTaken):
			return response.Conflict(c, "You already have an active booking for this slot")
		case errors.Is(err, services.ErrDonorProfileMissing):
			return response.Forbidden(c, "Only donors can book appointments")
		default:
			return response.InternalServerError(c, "Failed to book appointment")
		}
	}

	return response.Created(c, "Appointment booked successfully", appt)
}

// ListMine lists the donor's own appointments
// @Summary List own appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /appointments/donor [get]
func (h *AppointmentHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	appts, err := h.apptService.ListForDonor(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDonorProfileMissing):
			return response.Forbidden(c, "Only donors have appointment history")
		default:
			return response.InternalServerError(c, "Failed to list appointments")
		}
	}

	return response.Success(c, "Appointments retrieved successfully", appts)
}

// ListAll lists all appointments (admin)
// @Summary List all appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAll(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	appts, total, err := h.apptService.ListAll(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "Appointments retrieved successfully", fiber.Map{
		"appointments": appts,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// GetSlots reports slot availability for a center and date
// @Summary Get slot availability
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param center_id query int true "Center ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments/slots [get]
func (h *AppointmentHandler) GetSlots(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	centerID := c.QueryInt("center_id", 0)
	date := c.Query("date")
	if centerID == 0 || date == "" {
		return response.BadRequest(c, "center_id and date are required")
	}

	slots, err := h.apptService.GetSlots(c.Context(), userID, uint(centerID), date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCenterNotFound):
			return response.NotFound(c, "Donation center not found")
		case errors.Is(err, services.ErrDonorProfileMissing):
			return response.Forbidden(c, "Only donors can check slots")
		default:
			return response.InternalServerError(c, "Failed to get slots")
		}
	}

	return response.Success(c, "Slots retrieved successfully", slots)
}

// Cancel cancels the donor's own appointment
// @Summary Cancel appointment
// @Description Cancel an appointment while it is scheduled or confirmed
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/cancel/{id} [patch]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apptID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appt, err := h.apptService.Cancel(c.Context(), userID, apptID)
	if err != nil {
		return h.mapTransitionError(c, err)
	}

	return response.Success(c, "Appointment cancelled successfully", appt)
}

// Confirm confirms a scheduled appointment (admin)
// @Summary Confirm appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/confirm [put]
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	return h.adminTransition(c, h.apptService.Confirm, "Appointment confirmed successfully")
}

// Reject declines an appointment (admin)
// @Summary Reject appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/reject [put]
func (h *AppointmentHandler) Reject(c *fiber.Ctx) error {
	return h.adminTransition(c, h.apptService.Reject, "Appointment rejected")
}

// Complete marks an appointment completed and registers the donated unit (admin)
// @Summary Complete appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/complete [put]
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	return h.adminTransition(c, h.apptService.Complete, "Appointment completed, unit registered")
}

// adminTransition runs one of the admin appointment actions
func (h *AppointmentHandler) adminTransition(
	c *fiber.Ctx,
	fn func(ctx context.Context, adminID uint, apptID uint) (*models.AppointmentResponse, error),
	message string,
) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apptID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appt, err := fn(c.Context(), adminID, apptID)
	if err != nil {
		return h.mapTransitionError(c, err)
	}

	return response.Success(c, message, appt)
}

// mapTransitionError maps appointment transition failures onto HTTP codes
func (h *AppointmentHandler) mapTransitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		return response.NotFound(c, "Appointment not found")
	case errors.Is(err, services.ErrNotYourAppointment):
		return response.Forbidden(c, "Appointment belongs to another donor")
	case errors.Is(err, services.ErrAppointmentNotActive):
		return response.Conflict(c, "Appointment is no longer active")
	case errors.Is(err, services.ErrDonorProfileMissing):
		return response.Forbidden(c, "Only donors can manage appointments")
	default:
		return response.InternalServerError(c, "Failed to update appointment")
	}
}

// parseIDParam reads the :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
