package dto

import (
	"time"

	"rapidjobs_backend/internal/models"
)

// RequestSummary flattens a job request with its requester for list views.
type RequestSummary struct {
	ID            string               `json:"id"`
	JobID         string               `json:"jobId"`
	JobTitle      string               `json:"jobTitle,omitempty"`
	RequesterID   string               `json:"requesterId"`
	RequesterName string               `json:"requesterName"`
	Status        models.RequestStatus `json:"status"`
	RequestedAt   time.Time            `json:"requestedAt"`
}
