package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/pkg/apperrors"
	"rapidjobs_backend/ws"
)

// RequestService arbitrates the bid lifecycle: a non-owner requests a job,
// the owner approves one bid (assigning the job) or rejects it. Transitions
// only ever originate from pending; anything else is a conflict.
type RequestService struct {
	requests   repositories.RequestRepository
	jobs       repositories.JobRepository
	users      repositories.UserRepository
	messages   repositories.MessageRepository
	dispatcher EffectDispatcher
}

func NewRequestService(
	requests repositories.RequestRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	messages repositories.MessageRepository,
	dispatcher EffectDispatcher,
) *RequestService {
	return &RequestService{
		requests:   requests,
		jobs:       jobs,
		users:      users,
		messages:   messages,
		dispatcher: dispatcher,
	}
}

// RequestJob files a pending request from actorID for the job. Owners cannot
// request their own jobs and a user can hold at most one request per job.
func (s *RequestService) RequestJob(ctx context.Context, actorID, jobID string) (*models.Request, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UpstreamError(err)
	}
	if job.OwnerID == actorID {
		return nil, apperrors.ErrSelfRequest
	}

	// Friendly pre-check; the unique index stays the authority under races.
	if _, err := s.requests.FindByJobAndUser(ctx, jobID, actorID); err == nil {
		return nil, apperrors.ErrDuplicateRequest
	} else if !errors.Is(err, repositories.ErrRequestNotFound) {
		return nil, apperrors.UpstreamError(err)
	}

	request := &models.Request{
		JobID:       jobID,
		UserID:      actorID,
		OwnerPostID: job.OwnerID,
		Status:      models.RequestStatusPending,
		RequestedAt: time.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrRequestAlreadyExists) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, apperrors.UpstreamError(err)
	}

	requester, err := s.users.FindByID(ctx, actorID)
	requesterName := "Someone"
	if err == nil {
		requesterName = requester.Name
	}

	effects := []Effect{
		EventEffect{Event: "jobRequested", Payload: map[string]interface{}{
			"jobId":     jobID,
			"requestId": request.ID,
			"userId":    actorID,
		}},
	}
	effects = append(effects, PushEffect{
		RecipientID:  job.OwnerID,
		DeviceTokens: ownerTokens(ctx, s.users, job.OwnerID),
		Type:         models.NotificationTypeJobRequested,
		Title:        "New Job Request",
		Message:      fmt.Sprintf("%s wants to do your job: %s", requesterName, job.Title),
		Data:         map[string]interface{}{"jobId": jobID, "requestId": request.ID, "type": models.NotificationTypeJobRequested},
	})
	s.dispatcher.Dispatch(effects)

	logger.CtxInfo(ctx, "job requested", "job_id", jobID, "request_id", request.ID)
	return request, nil
}

// ApproveRequest accepts a pending bid. In one transaction the request moves
// to approved and the job leaves the open pool with the requester assigned.
// A request that is no longer pending, or a job that is no longer open,
// aborts with a conflict.
func (s *RequestService) ApproveRequest(ctx context.Context, actorID, jobID, requestID string) (*models.Request, error) {
	request, job, err := s.loadForDecision(ctx, actorID, jobID, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Approve(ctx, request); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRequestNotPending):
			return nil, apperrors.ErrRequestAlreadyDecided
		case errors.Is(err, repositories.ErrJobNotOpen):
			return nil, apperrors.ErrJobNotOpen
		default:
			return nil, apperrors.UpstreamError(err)
		}
	}
	request.Status = models.RequestStatusApproved

	s.dispatcher.Dispatch(s.approvalEffects(ctx, job, request))

	logger.CtxInfo(ctx, "request approved", "job_id", jobID, "request_id", requestID, "assignee_id", request.UserID)
	return request, nil
}

// RejectRequest declines a pending bid. The job itself is never touched, so
// other pending requests stay decidable.
func (s *RequestService) RejectRequest(ctx context.Context, actorID, jobID, requestID string) (*models.Request, error) {
	request, job, err := s.loadForDecision(ctx, actorID, jobID, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Reject(ctx, requestID); err != nil {
		if errors.Is(err, repositories.ErrRequestNotPending) {
			return nil, apperrors.ErrRequestAlreadyDecided
		}
		return nil, apperrors.UpstreamError(err)
	}
	request.Status = models.RequestStatusRejected

	effects := []Effect{
		EventEffect{Event: "requestRejected", Payload: map[string]interface{}{
			"jobId":     jobID,
			"requestId": requestID,
			"userId":    request.UserID,
		}},
		PushEffect{
			RecipientID:  request.UserID,
			DeviceTokens: ownerTokens(ctx, s.users, request.UserID),
			Type:         models.NotificationTypeRequestRejected,
			Title:        "Request Update",
			Message:      fmt.Sprintf("Your request for \"%s\" was not accepted this time.", job.Title),
			Data:         map[string]interface{}{"jobId": jobID, "type": models.NotificationTypeRequestRejected},
		},
	}
	s.dispatcher.Dispatch(effects)

	logger.CtxInfo(ctx, "request rejected", "job_id", jobID, "request_id", requestID)
	return request, nil
}

// ListJobRequests lists the bids on one job. Owner only.
func (s *RequestService) ListJobRequests(ctx context.Context, actorID, jobID string) ([]dto.RequestSummary, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UpstreamError(err)
	}
	if job.OwnerID != actorID {
		return nil, apperrors.ErrNotJobOwner
	}

	requests, err := s.requests.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}
	return summarize(requests, job.Title), nil
}

// ListOwnerRequests lists every bid across all of the caller's jobs.
func (s *RequestService) ListOwnerRequests(ctx context.Context, actorID string) ([]dto.RequestSummary, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	requests, err := s.requests.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}
	return summarize(requests, ""), nil
}

// loadForDecision checks the prerequisites shared by approve and reject:
// the job exists, the caller owns it, and the request belongs to it.
func (s *RequestService) loadForDecision(ctx context.Context, actorID, jobID, requestID string) (*models.Request, *models.Job, error) {
	if actorID == "" {
		return nil, nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.UpstreamError(err)
	}
	if job.OwnerID != actorID {
		return nil, nil, apperrors.ErrNotJobOwner
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.UpstreamError(err)
	}
	if request.JobID != jobID {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrRequestNotFound)
	}

	return request, job, nil
}

// approvalEffects builds everything that follows an approval: a seeded chat
// message with the job address, room events so open clients see it
// immediately, and a push to the new assignee. The chat seed failing only
// loses the seed, never the approval.
func (s *RequestService) approvalEffects(ctx context.Context, job *models.Job, request *models.Request) []Effect {
	effects := []Effect{
		EventEffect{Event: "requestApproved", Payload: map[string]interface{}{
			"jobId":     job.ID,
			"requestId": request.ID,
			"userId":    request.UserID,
		}},
	}

	seed := &models.Message{
		JobID:      job.ID,
		SenderID:   job.OwnerID,
		ReceiverID: request.UserID,
		Body:       fmt.Sprintf("Your request has been approved! Job address: %s", job.Address),
		Timestamp:  time.Now(),
	}
	if err := s.messages.Create(ctx, seed); err != nil {
		logger.CtxWithError(ctx, "failed to seed approval chat message", err, "job_id", job.ID)
	} else {
		room := ws.ChatRoomID(job.ID, job.OwnerID, request.UserID)
		for _, target := range []string{room, job.OwnerID, request.UserID} {
			effects = append(effects, EventEffect{Room: target, Event: "newMessage", Payload: seed})
		}
	}

	effects = append(effects, PushEffect{
		RecipientID:  request.UserID,
		DeviceTokens: ownerTokens(ctx, s.users, request.UserID),
		Type:         models.NotificationTypeRequestApproved,
		Title:        "Request Approved!",
		Message:      fmt.Sprintf("Your request for \"%s\" was approved. Check chat for the address.", job.Title),
		Data:         map[string]interface{}{"jobId": job.ID, "type": models.NotificationTypeRequestApproved},
	})
	return effects
}

// ownerTokens resolves one user's pushable device token. Lookup failures and
// muted users produce an empty slice; the notification row is still written.
func ownerTokens(ctx context.Context, users repositories.UserRepository, userID string) []string {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load push recipient", err, "user_id", userID)
		return nil
	}
	if !user.NotificationsEnabled || user.DeviceToken == nil || *user.DeviceToken == "" {
		return nil
	}
	return []string{*user.DeviceToken}
}

func summarize(requests []models.Request, jobTitle string) []dto.RequestSummary {
	summaries := make([]dto.RequestSummary, 0, len(requests))
	for _, req := range requests {
		summary := dto.RequestSummary{
			ID:          req.ID,
			JobID:       req.JobID,
			JobTitle:    jobTitle,
			RequesterID: req.UserID,
			Status:      req.Status,
			RequestedAt: req.RequestedAt,
		}
		if req.Requester != nil {
			summary.RequesterName = req.Requester.Name
		}
		if jobTitle == "" && req.Job != nil {
			summary.JobTitle = req.Job.Title
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
