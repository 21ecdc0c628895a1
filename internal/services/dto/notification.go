package dto

import (
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/pkg/pagination"
)

type NotificationPreferenceRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type NotificationFeedResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Pagination    pagination.Meta       `json:"pagination"`
}
