package handlers

import (
	"errors"

	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List lists the user's notifications
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.notificationService.ListForUser(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", result)
}

// UnreadCount returns the user's unread notification count
// @Summary Unread count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.notificationService.ListForUser(c.Context(), userID, 1, 1)
	if err != nil {
		return response.InternalServerError(c, "Failed to count notifications")
	}

	return response.Success(c, "Unread count retrieved successfully", fiber.Map{
		"unread": result.Unread,
	})
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	notificationID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), userID, notificationID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return response.NotFound(c, "Notification not found")
		case errors.Is(err, services.ErrNotYourNotification):
			return response.Forbidden(c, "Notification belongs to another user")
		default:
			return response.InternalServerError(c, "Failed to mark notification read")
		}
	}

	return response.Success(c, "Notification marked read", nil)
}

// SendRequest represents an admin-sent notification body
type SendRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Channel     string `json:"channel"`
}

// Send delivers a notification to one user (admin)
// @Summary Send notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendRequest true "Notification"
// @Success 200 {object} response.Response
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RecipientID == 0 || req.Subject == "" {
		return response.BadRequest(c, "recipient_id and subject are required")
	}

	h.notificationService.Notify(c.Context(), &services.NotifyInput{
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Message:     req.Message,
		EventType:   services.EventNotification,
		Channel:     req.Channel,
	})

	return response.Success(c, "Notification sent", nil)
}
