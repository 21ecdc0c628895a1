package dto

import "time"

type SendMessageRequest struct {
	JobID      string `json:"job_id" validate:"required,uuid"`
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Message    string `json:"message" validate:"required,max=4000"`
}

// RoomSummary is one conversation in the user's chat list, keyed by
// job and the other participant.
type RoomSummary struct {
	JobID               string    `json:"jobId"`
	JobTitle            string    `json:"jobTitle"`
	OtherUserID         string    `json:"otherUserId"`
	LastMessage         string    `json:"lastMessage"`
	LastMessageSenderID string    `json:"lastMessageSenderId"`
	Timestamp           time.Time `json:"timestamp"`
}
