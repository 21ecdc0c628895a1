package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/pkg/pagination"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *fakeNotificationRepo, *models.User) {
	t.Helper()
	users := newFakeUserRepo()
	notifications := newFakeNotificationRepo()
	user := &models.User{Phone: "+77001234567", Name: "Aidar", IsVerified: true, NotificationsEnabled: true}
	require.NoError(t, users.Create(context.Background(), user))
	return NewNotificationService(notifications, users), notifications, user
}

func TestNotificationFeedAndUnreadCount(t *testing.T) {
	svc, repo, user := newNotificationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserID: user.ID,
			Type:   models.NotificationTypeNewJob,
			Title:  "New Job Posted!",
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Notification{
		UserID: "someone-else",
		Type:   models.NotificationTypeNewJob,
	}))

	feed, err := svc.Feed(ctx, user.ID, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, feed.Notifications, 2)
	assert.Equal(t, int64(3), feed.Pagination.TotalItems)
	assert.Equal(t, 2, feed.Pagination.TotalPages)

	count, err := svc.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMarkReadIsScopedToOwner(t *testing.T) {
	svc, repo, user := newNotificationFixture(t)
	ctx := context.Background()

	n := &models.Notification{UserID: user.ID, Type: models.NotificationTypeNewMessage}
	require.NoError(t, repo.Create(ctx, n))

	err := svc.MarkRead(ctx, "someone-else", n.ID)
	require.Error(t, err)

	require.NoError(t, svc.MarkRead(ctx, user.ID, n.ID))
	count, err := svc.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllRead(t *testing.T) {
	svc, repo, user := newNotificationFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserID: user.ID,
			Type:   models.NotificationTypeJobRequested,
		}))
	}

	require.NoError(t, svc.MarkAllRead(ctx, user.ID))
	count, err := svc.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSetPreferenceMutesPushOnly(t *testing.T) {
	users := newFakeUserRepo()
	notifications := newFakeNotificationRepo()
	svc := NewNotificationService(notifications, users)
	ctx := context.Background()

	token := "ExponentPushToken[abc]"
	user := &models.User{
		Phone:                "+77001234567",
		Name:                 "Aidar",
		IsVerified:           true,
		NotificationsEnabled: true,
		DeviceToken:          &token,
	}
	require.NoError(t, users.Create(ctx, user))

	enabled := false
	require.NoError(t, svc.SetPreference(ctx, user.ID, &dto.NotificationPreferenceRequest{Enabled: &enabled}))

	// Muted users disappear from broadcast token lists.
	tokens, err := users.BroadcastDeviceTokens(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.NotificationsEnabled)
}
