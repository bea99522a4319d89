package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EventsHandler streams server-sent events to authenticated clients
type EventsHandler struct {
	notificationService *services.NotificationService
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(notificationService *services.NotificationService) *EventsHandler {
	return &EventsHandler{notificationService: notificationService}
}

// Stream opens an SSE stream carrying appointment, request, unit and
// notification events for the connected user.
// @Summary Event stream
// @Description Server-sent events stream for real-time updates
// @Tags Events
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200
// @Router /events/stream [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	clientID := uuid.New().String()

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		client := &services.SSEClient{
			ID:      clientID,
			UserID:  userID,
			Role:    role,
			Channel: make(chan services.SSEEvent, 50),
		}

		h.notificationService.Hub.Register(client)
		defer h.notificationService.Hub.Unregister(clientID)

		fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":\"%s\"}\n\n", clientID)
		w.Flush()

		heartbeat := time.NewTicker(30 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-client.Channel:
				if !ok {
					return
				}
				writeSSEEvent(w, event)
				if err := w.Flush(); err != nil {
					return
				}

			case <-heartbeat.C:
				fmt.Fprintf(w, ": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					log.Printf("📡 SSE client disconnected: %s", clientID)
					return
				}
			}
		}
	})

	return nil
}

// writeSSEEvent writes a formatted SSE event to the writer
func writeSSEEvent(w *bufio.Writer, event services.SSEEvent) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		payload = []byte("{}")
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
}
