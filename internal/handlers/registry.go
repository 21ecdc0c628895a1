package handlers

import (
	"rapidjobs_backend/internal/services"
	"rapidjobs_backend/internal/validator"
	"rapidjobs_backend/ws"
)

// AppHandlers aggregates every HTTP handler for route registration.
type AppHandlers struct {
	Auth          *AuthHandler
	Jobs          *JobHandler
	Requests      *RequestHandler
	Reviews       *ReviewHandler
	Chat          *ChatHandler
	Notifications *NotificationHandler
	WebSocket     *ws.WebSocketHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator, manager *ws.Manager) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:          NewAuthHandler(base, container.Auth),
		Jobs:          NewJobHandler(base, container.Jobs),
		Requests:      NewRequestHandler(base, container.Requests),
		Reviews:       NewReviewHandler(base, container.Reviews),
		Chat:          NewChatHandler(base, container.Chat),
		Notifications: NewNotificationHandler(base, container.Notifications),
		WebSocket:     ws.NewWebSocketHandler(manager),
	}
}
