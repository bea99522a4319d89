package handlers

import (
	"errors"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles blood request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestRequest represents blood request creation body
type CreateRequestRequest struct {
	BloodType string `json:"blood_type"`
	Units     int    `json:"units"`
	Priority  string `json:"priority"`
	Notes     string `json:"notes"`
}

// Create files a new blood request (hospital)
// @Summary Create blood request
// @Description File a blood request; high/critical priority triggers donor matching and returns the matches inline
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestRequest true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.CreateRequestInput{
		BloodType: req.BloodType,
		Units:     req.Units,
		Priority:  req.Priority,
		Notes:     req.Notes,
	}

	result, err := h.requestService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
		case errors.Is(err, domain.ErrInvalidPriority):
			return response.BadRequest(c, "Priority must be low, medium, high or critical")
		case errors.Is(err, services.ErrInvalidUnitCount):
			return response.BadRequest(c, "Units must be at least 1")
		case errors.Is(err, services.ErrHospitalProfileMissing):
			return response.Forbidden(c, "Only hospitals can file blood requests")
		default:
			return response.InternalServerError(c, "Failed to create blood request")
		}
	}

	return response.Created(c, "Blood request created successfully", result)
}

// ListAll lists blood requests. Hospitals see their own; admins see all.
// @Summary List blood requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /requests/all [get]
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	input := &services.ListRequestsInput{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}

	var result *services.ListRequestsOutput
	var err error
	if role == models.RoleAdmin {
		result, err = h.requestService.ListAll(c.Context(), input)
	} else {
		result, err = h.requestService.ListForHospital(c.Context(), userID, input)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHospitalProfileMissing):
			return response.Forbidden(c, "Only hospitals and admins can list requests")
		default:
			return response.InternalServerError(c, "Failed to list blood requests")
		}
	}

	return response.Success(c, "Blood requests retrieved successfully", result)
}

// Get returns one blood request
// @Summary Get blood request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	requestID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	result, err := h.requestService.GetByID(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Blood request not found")
		}
		return response.InternalServerError(c, "Failed to get blood request")
	}

	return response.Success(c, "Blood request retrieved successfully", result)
}

// Approve approves a pending request (admin)
// @Summary Approve request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	result, err := h.requestService.Approve(c.Context(), adminID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotPending):
			return response.Conflict(c, "Only pending requests can be approved")
		default:
			return response.InternalServerError(c, "Failed to approve request")
		}
	}

	return response.Success(c, "Request approved successfully", result)
}

// RejectRequest represents a rejection body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject rejects a pending request (admin)
// @Summary Reject request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body RejectRequest false "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req RejectRequest
	_ = c.BodyParser(&req)

	result, err := h.requestService.Reject(c.Context(), adminID, requestID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotPending):
			return response.Conflict(c, "Only pending requests can be rejected")
		default:
			return response.InternalServerError(c, "Failed to reject request")
		}
	}

	return response.Success(c, "Request rejected", result)
}

// Fulfill reserves units for an approved request (admin)
// @Summary Fulfill request
// @Description Assign the oldest available units of the requested type
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/fulfill [post]
func (h *RequestHandler) Fulfill(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	result, err := h.requestService.Fulfill(c.Context(), adminID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotApproved):
			return response.Conflict(c, "Only approved requests can be fulfilled")
		case errors.Is(err, services.ErrInsufficientStock):
			return response.Conflict(c, "Not enough available units to fulfill this request")
		default:
			return response.InternalServerError(c, "Failed to fulfill request")
		}
	}

	return response.Success(c, "Request fulfilled successfully", result)
}

// MatchRequest represents a donor matching body
type MatchRequest struct {
	RequestID uint `json:"request_id"`
}

// Match finds compatible donors for a request
// @Summary Match donors
// @Description Find eligible compatible donors for a request, longest rested first
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MatchRequest true "Request reference"
// @Success 200 {object} response.Response
// @Router /requests/match [post]
func (h *RequestHandler) Match(c *fiber.Ctx) error {
	var req MatchRequest
	if err := c.BodyParser(&req); err != nil || req.RequestID == 0 {
		return response.BadRequest(c, "request_id is required")
	}

	results, err := h.requestService.MatchDonors(c.Context(), req.RequestID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Blood request not found")
		}
		return response.InternalServerError(c, "Failed to match donors")
	}

	return response.Success(c, "Matching donors retrieved successfully", fiber.Map{
		"matches": results,
		"count":   len(results),
	})
}
