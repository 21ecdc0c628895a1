package models

import "time"

// JobImages is the reference triple produced by the image pipeline. The
// backend only stores the URLs, it never touches the binaries.
type JobImages struct {
	Original string `json:"original"`
	Small    string `json:"small"`
	Large    string `json:"large"`
}

type Job struct {
	BaseModel
	Title       string    `gorm:"not null" json:"title"`
	Pay         float64   `gorm:"not null" json:"pay"`
	Address     string    `gorm:"not null" json:"address"`
	Description string    `json:"description"`
	Images      JobImages `gorm:"embedded;embeddedPrefix:image_" json:"images"`
	Category    string    `gorm:"index" json:"category"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`

	// Invariant: AssigneeID is set iff Status is approved or completed.
	// Transitions are monotonic: open -> approved -> completed.
	Status     JobStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`
	AssigneeID *string   `gorm:"type:uuid;index" json:"assignee_id,omitempty"`

	PostedAt time.Time `gorm:"index" json:"posted_at"`

	Owner    *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
