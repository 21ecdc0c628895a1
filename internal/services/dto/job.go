package dto

import (
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/pkg/pagination"
)

type JobImagesPayload struct {
	Original string `json:"original" validate:"omitempty,url"`
	Small    string `json:"small" validate:"omitempty,url"`
	Large    string `json:"large" validate:"omitempty,url"`
}

type CreateJobRequest struct {
	Title       string           `json:"title" validate:"required,min=3,max=200"`
	Pay         float64          `json:"pay" validate:"required,gt=0"`
	Address     string           `json:"address" validate:"required"`
	Description string           `json:"description" validate:"max=5000"`
	Images      JobImagesPayload `json:"images"`
	Category    string           `json:"category" validate:"required,max=100"`
}

type JobListCriteria struct {
	Title    string `form:"title"`
	Category string `form:"category"`
	Status   string `form:"status" validate:"omitempty,is-job-status"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type JobListResponse struct {
	Jobs       []models.Job    `json:"jobs"`
	Pagination pagination.Meta `json:"pagination"`
}

// ApprovedJobView is the dashboard projection for a job the caller
// participates in. The annotation rules are part of the UI contract.
type ApprovedJobView struct {
	Job                    models.Job `json:"job"`
	IsOwner                bool       `json:"isOwner"`
	IsAssignee             bool       `json:"isAssignee"`
	OwnerName              string     `json:"ownerName"`
	AssigneeName           string     `json:"assigneeName"`
	CanComplete            bool       `json:"canComplete"`
	CanReview              bool       `json:"canReview"`
	HasCurrentUserReviewed bool       `json:"hasCurrentUserReviewed"`
}
