package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/push"
)

type recordingChannel struct {
	mu     sync.Mutex
	emits  []string
	rooms  []string
	events []string
}

func (c *recordingChannel) Emit(event string, _ interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emits = append(c.emits, event)
}

func (c *recordingChannel) EmitTo(room string, event string, _ interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms = append(c.rooms, room)
	c.events = append(c.events, event)
}

func TestDispatcherPersistsAddressedPushes(t *testing.T) {
	notifications := newFakeNotificationRepo()
	d := &dispatcher{
		notifications: notifications,
		gateway:       push.Noop{},
		timeout:       time.Second,
	}

	d.handlePush(context.Background(), PushEffect{
		RecipientID: "user-1",
		Type:        models.NotificationTypeRequestApproved,
		Title:       "Request Approved!",
		Message:     "m",
		Data:        map[string]interface{}{"jobId": "j1"},
	})

	count, err := notifications.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDispatcherSkipsFeedForBroadcasts(t *testing.T) {
	notifications := newFakeNotificationRepo()
	d := &dispatcher{
		notifications: notifications,
		gateway:       push.Noop{},
		timeout:       time.Second,
	}

	d.handlePush(context.Background(), PushEffect{
		DeviceTokens: []string{"ExponentPushToken[a]"},
		Type:         models.NotificationTypeNewJob,
		Title:        "New Job Posted!",
	})

	assert.Empty(t, notifications.notifications)
}

func TestDispatcherRoutesEvents(t *testing.T) {
	channel := &recordingChannel{}
	d := &dispatcher{events: channel, timeout: time.Second}

	d.handleEvent(EventEffect{Event: "jobCreated"})
	d.handleEvent(EventEffect{Room: "user-1", Event: "newMessage"})

	assert.Equal(t, []string{"jobCreated"}, channel.emits)
	assert.Equal(t, []string{"user-1"}, channel.rooms)
	assert.Equal(t, []string{"newMessage"}, channel.events)
}
