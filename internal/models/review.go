package models

// Review is a post-completion rating exchanged between a job's owner and
// assignee. One review per (job, reviewer); immutable once created.
type Review struct {
	BaseModel
	JobID      string `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_job_reviewer" json:"job_id"`
	ReviewerID string `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_job_reviewer" json:"reviewer_id"`
	RevieweeID string `gorm:"type:uuid;not null;index" json:"reviewee_id"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `json:"comment"`

	Job      *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}
