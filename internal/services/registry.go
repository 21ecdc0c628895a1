package services

import (
	"gorm.io/gorm"

	"rapidjobs_backend/internal/push"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/verify"
)

// ServiceContainer wires repositories and collaborators into the service
// layer. Construct once at startup.
type ServiceContainer struct {
	Auth          *AuthService
	Jobs          *JobService
	Requests      *RequestService
	Reviews       *ReviewService
	Chat          *ChatService
	Notifications *NotificationService
}

func NewServiceContainer(db *gorm.DB, verifier verify.Provider, gateway push.Gateway, events EventChannel) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	jobs := repositories.NewJobRepository(db)
	requests := repositories.NewRequestRepository(db)
	reviews := repositories.NewReviewRepository(db)
	messages := repositories.NewMessageRepository(db)
	notifications := repositories.NewNotificationRepository(db)

	dispatcher := NewDispatcher(notifications, gateway, events)

	return &ServiceContainer{
		Auth:          NewAuthService(users, verifier),
		Jobs:          NewJobService(jobs, reviews, users, dispatcher),
		Requests:      NewRequestService(requests, jobs, users, messages, dispatcher),
		Reviews:       NewReviewService(reviews, jobs, dispatcher),
		Chat:          NewChatService(messages, jobs, users, dispatcher),
		Notifications: NewNotificationService(notifications, users),
	}
}
