package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/core/domain"
	"bloodlink/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotYourNotification  = errors.New("notification belongs to another user")
)

// SSE event names pushed to connected clients
const (
	EventAppointmentScheduled = "appointment_scheduled"
	EventRequestStatusChanged = "request_status_changed"
	EventUnitStatusChanged    = "unit_status_changed"
	EventNotification         = "notification"
)

// ============================================================
// SSE Hub
// ============================================================

// SSEEvent represents a server-sent event
type SSEEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID      string
	UserID  uint
	Role    string
	Channel chan SSEEvent
}

// SSEHub manages all SSE connections
type SSEHub struct {
	mu      sync.RWMutex
	clients map[string]*SSEClient
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]*SSEClient),
	}
}

// Register adds a new SSE client
func (h *SSEHub) Register(client *SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("📡 SSE client registered: %s (user=%d, role=%s) | total=%d",
		client.ID, client.UserID, client.Role, len(h.clients))
}

// Unregister removes an SSE client
func (h *SSEHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Channel)
		delete(h.clients, clientID)
		log.Printf("📡 SSE client unregistered: %s | total=%d", clientID, len(h.clients))
	}
}

// Broadcast sends an event to every connected client
func (h *SSEHub) Broadcast(event SSEEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		select {
		case client.Channel <- event:
			sent++
		default:
			// Client channel full, skip
			log.Printf("⚠️ SSE channel full for client %s, skipping", client.ID)
		}
	}
	if sent > 0 {
		log.Printf("📡 SSE broadcast [%s] → %d clients", event.Event, sent)
	}
}

// BroadcastToRole sends an event to all clients holding a role
func (h *SSEHub) BroadcastToRole(role string, event SSEEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.Role == role {
			select {
			case client.Channel <- event:
			default:
				log.Printf("⚠️ SSE channel full for client %s, skipping", client.ID)
			}
		}
	}
}

// SendToUser sends an event to a specific user
func (h *SSEHub) SendToUser(userID uint, event SSEEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Channel <- event:
				log.Printf("📡 SSE sent [%s] to user %d", event.Event, userID)
			default:
				log.Printf("⚠️ SSE channel full for user %d, skipping", userID)
			}
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *SSEHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ============================================================
// NotificationService: persisted notifications + SSE push
// ============================================================

// NotificationService stores in-app notifications and pushes them to
// connected SSE clients.
type NotificationService struct {
	Hub              *SSEHub
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		Hub:              NewSSEHub(),
		notificationRepo: notificationRepo,
	}
}

// NotifyInput carries one notification to one recipient
type NotifyInput struct {
	RecipientID uint
	Subject     string
	Message     string
	EventType   string
	BloodType   *domain.BloodType
	Units       *int
	Channel     string
}

// Notify persists a notification and pushes it over SSE. A storage
// failure is logged but does not fail the caller's operation.
func (s *NotificationService) Notify(ctx context.Context, input *NotifyInput) {
	channel := input.Channel
	if channel == "" {
		channel = models.ChannelApp
	}

	n := &models.Notification{
		RecipientID:    input.RecipientID,
		Subject:        input.Subject,
		Message:        input.Message,
		EventType:      input.EventType,
		BloodType:      input.BloodType,
		Units:          input.Units,
		Channel:        channel,
		DeliveryStatus: models.DeliverySent,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("❌ Failed to store notification for user %d: %v", input.RecipientID, err)
		n.DeliveryStatus = models.DeliveryFailed
	}

	s.Hub.SendToUser(input.RecipientID, SSEEvent{Event: EventNotification, Data: n})
}

// ListNotificationsOutput represents a paged notification listing
type ListNotificationsOutput struct {
	Notifications []*models.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Unread        int64                  `json:"unread"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
}

// ListForUser lists a user's notifications with the unread count
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, page, limit int) (*ListNotificationsOutput, error) {
	p := pagination.Normalize(page, limit)

	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, userID, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ListNotificationsOutput{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
		Page:          p.Page,
		Limit:         p.Limit,
	}, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}

	if n.RecipientID != userID {
		return ErrNotYourNotification
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}
