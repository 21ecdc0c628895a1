package models

import "time"

// Request is a bid by a non-owner user to perform a job. The unique index on
// (job_id, user_id) is the authority on duplicates; the service-level check
// only produces a friendlier error for the common case.
type Request struct {
	BaseModel
	JobID  string `gorm:"type:uuid;not null;uniqueIndex:idx_requests_job_user" json:"job_id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_requests_job_user" json:"user_id"`

	// Denormalized job owner, kept for owner-scoped listing without a join.
	OwnerPostID string `gorm:"type:uuid;not null;index" json:"owner_post_id"`

	Status      RequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RequestedAt time.Time     `json:"requested_at"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Requester *User `gorm:"foreignKey:UserID" json:"requester,omitempty"`
}
