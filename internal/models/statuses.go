package models

type JobStatus string
type RequestStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusApproved  JobStatus = "approved"
	JobStatusCompleted JobStatus = "completed"

	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Notification types delivered to devices and stored in the feed.
const (
	NotificationTypeNewJob          = "new_job"
	NotificationTypeJobRequested    = "job_requested"
	NotificationTypeRequestApproved = "request_approved"
	NotificationTypeRequestRejected = "request_rejected"
	NotificationTypeNewMessage      = "new_message"
)
