package services

import (
	"context"
	"errors"

	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/pkg/apperrors"
	"rapidjobs_backend/pkg/pagination"
)

// NotificationService exposes the persisted notification feed and the
// per-user delivery preference.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

func (s *NotificationService) Feed(ctx context.Context, actorID string, paging pagination.Params) (*dto.NotificationFeedResponse, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	paging = paging.Normalize()
	notifications, total, err := s.notifications.ListByUser(ctx, actorID, paging)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return &dto.NotificationFeedResponse{
		Notifications: notifications,
		Pagination:    pagination.NewMeta(paging, total),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actorID string) (int64, error) {
	if actorID == "" {
		return 0, apperrors.NewUnauthorizedError("Authentication required")
	}
	count, err := s.notifications.UnreadCount(ctx, actorID)
	if err != nil {
		return 0, apperrors.UpstreamError(err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID string) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if err := s.notifications.MarkRead(ctx, actorID, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actorID string) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if err := s.notifications.MarkAllRead(ctx, actorID); err != nil {
		return apperrors.UpstreamError(err)
	}
	return nil
}

// SetPreference toggles push delivery for the caller. The feed keeps
// accumulating either way; only device pushes are muted.
func (s *NotificationService) SetPreference(ctx context.Context, actorID string, req *dto.NotificationPreferenceRequest) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if err := s.users.UpdateNotificationsEnabled(ctx, actorID, *req.Enabled); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	return nil
}
