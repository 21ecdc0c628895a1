package services

import (
	"context"
	"errors"
	"time"

	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/pkg/apperrors"
	"rapidjobs_backend/ws"
)

// ChatService persists job-scoped conversations and mirrors every message to
// the chat room and to both participants' personal rooms.
type ChatService struct {
	messages   repositories.MessageRepository
	jobs       repositories.JobRepository
	users      repositories.UserRepository
	dispatcher EffectDispatcher
}

func NewChatService(
	messages repositories.MessageRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	dispatcher EffectDispatcher,
) *ChatService {
	return &ChatService{messages: messages, jobs: jobs, users: users, dispatcher: dispatcher}
}

func (s *ChatService) SendMessage(ctx context.Context, actorID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	if req.ReceiverID == actorID {
		return nil, apperrors.NewBadRequestError("Cannot message yourself")
	}

	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UpstreamError(err)
	}

	msg := &models.Message{
		JobID:      req.JobID,
		SenderID:   actorID,
		ReceiverID: req.ReceiverID,
		Body:       req.Message,
		Timestamp:  time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	room := ws.ChatRoomID(req.JobID, actorID, req.ReceiverID)
	effects := []Effect{
		EventEffect{Room: room, Event: "newMessage", Payload: msg},
		EventEffect{Room: actorID, Event: "newMessage", Payload: msg},
		EventEffect{Room: req.ReceiverID, Event: "newMessage", Payload: msg},
	}

	sender, err := s.users.FindByID(ctx, actorID)
	senderName := "Someone"
	if err == nil {
		senderName = sender.Name
	}
	effects = append(effects, PushEffect{
		RecipientID:  req.ReceiverID,
		DeviceTokens: ownerTokens(ctx, s.users, req.ReceiverID),
		Type:         models.NotificationTypeNewMessage,
		Title:        senderName,
		Message:      req.Message,
		Data: map[string]interface{}{
			"jobId":    req.JobID,
			"senderId": actorID,
			"jobTitle": job.Title,
			"type":     models.NotificationTypeNewMessage,
		},
	})
	s.dispatcher.Dispatch(effects)

	logger.CtxDebug(ctx, "message sent", "job_id", req.JobID, "receiver_id", req.ReceiverID)
	return msg, nil
}

// History returns the conversation between the caller and another user on
// one job, oldest first.
func (s *ChatService) History(ctx context.Context, actorID, jobID, otherUserID string) ([]models.Message, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	messages, err := s.messages.History(ctx, jobID, actorID, otherUserID)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// Rooms projects the caller's messages into a conversation list: one entry
// per (job, other participant), carrying the most recent message.
func (s *ChatService) Rooms(ctx context.Context, actorID string) ([]dto.RoomSummary, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	messages, err := s.messages.ListForUser(ctx, actorID)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	// Messages arrive newest first, so the first message seen for a key is
	// the conversation's latest.
	seen := make(map[string]bool)
	var rooms []dto.RoomSummary
	var jobIDs []string
	for _, msg := range messages {
		other := msg.SenderID
		if other == actorID {
			other = msg.ReceiverID
		}
		key := msg.JobID + "-" + other
		if seen[key] {
			continue
		}
		seen[key] = true

		rooms = append(rooms, dto.RoomSummary{
			JobID:               msg.JobID,
			OtherUserID:         other,
			LastMessage:         msg.Body,
			LastMessageSenderID: msg.SenderID,
			Timestamp:           msg.Timestamp,
		})
		jobIDs = append(jobIDs, msg.JobID)
	}

	titles, err := s.jobs.Titles(ctx, jobIDs)
	if err != nil {
		logger.CtxWithError(ctx, "failed to resolve job titles for chat rooms", err)
	} else {
		for i := range rooms {
			rooms[i].JobTitle = titles[rooms[i].JobID]
		}
	}

	if rooms == nil {
		rooms = []dto.RoomSummary{}
	}
	return rooms, nil
}
