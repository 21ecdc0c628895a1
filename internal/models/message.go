package models

import "time"

type Message struct {
	BaseModel
	JobID      string    `gorm:"type:uuid;not null;index" json:"job_id"`
	SenderID   string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID string    `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Body       string    `gorm:"not null" json:"message"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}
