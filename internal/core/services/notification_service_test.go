package services

import (
	"context"
	"testing"

	"bloodlink/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHubClient(id string, userID uint, role string) *SSEClient {
	return &SSEClient{
		ID:      id,
		UserID:  userID,
		Role:    role,
		Channel: make(chan SSEEvent, 4),
	}
}

func TestHubSendToUser(t *testing.T) {
	hub := NewSSEHub()
	target := newHubClient("c1", 42, models.RoleDonor)
	other := newHubClient("c2", 43, models.RoleDonor)
	hub.Register(target)
	hub.Register(other)

	hub.SendToUser(42, SSEEvent{Event: EventAppointmentScheduled, Data: "payload"})

	select {
	case ev := <-target.Channel:
		assert.Equal(t, EventAppointmentScheduled, ev.Event)
	default:
		t.Fatal("target user received nothing")
	}
	assert.Empty(t, other.Channel)
}

func TestHubBroadcastToRole(t *testing.T) {
	hub := NewSSEHub()
	admin := newHubClient("a1", 1, models.RoleAdmin)
	donor := newHubClient("d1", 42, models.RoleDonor)
	hub.Register(admin)
	hub.Register(donor)

	hub.BroadcastToRole(models.RoleAdmin, SSEEvent{Event: EventUnitStatusChanged})

	require.Len(t, admin.Channel, 1)
	assert.Empty(t, donor.Channel)
}

func TestHubUnregister(t *testing.T) {
	hub := NewSSEHub()
	client := newHubClient("c1", 42, models.RoleDonor)
	hub.Register(client)
	assert.Equal(t, 1, hub.GetClientCount())

	hub.Unregister("c1")
	assert.Equal(t, 0, hub.GetClientCount())

	// Sending to a departed user is a no-op
	hub.SendToUser(42, SSEEvent{Event: EventNotification})
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	client := newHubClient("c1", 42, models.RoleDonor)
	svc.Hub.Register(client)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc.Notify(context.Background(), &NotifyInput{
		RecipientID: 42,
		Subject:     "Donation appointment reminder",
		Message:     "See you tomorrow.",
		EventType:   EventNotification,
	})

	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	require.Len(t, client.Channel, 1)
	ev := <-client.Channel
	n := ev.Data.(*models.Notification)
	assert.Equal(t, models.ChannelApp, n.Channel)
	assert.Equal(t, models.DeliverySent, n.DeliveryStatus)
}
