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
	"rapidjobs_backend/pkg/pagination"
)

type JobService struct {
	jobs       repositories.JobRepository
	reviews    repositories.ReviewRepository
	users      repositories.UserRepository
	dispatcher EffectDispatcher
}

func NewJobService(
	jobs repositories.JobRepository,
	reviews repositories.ReviewRepository,
	users repositories.UserRepository,
	dispatcher EffectDispatcher,
) *JobService {
	return &JobService{
		jobs:       jobs,
		reviews:    reviews,
		users:      users,
		dispatcher: dispatcher,
	}
}

// CreateJob publishes a new open job and announces it to everyone else.
func (s *JobService) CreateJob(ctx context.Context, ownerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if ownerID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	job := &models.Job{
		Title:       req.Title,
		Pay:         req.Pay,
		Address:     req.Address,
		Description: req.Description,
		Images: models.JobImages{
			Original: req.Images.Original,
			Small:    req.Images.Small,
			Large:    req.Images.Large,
		},
		Category: req.Category,
		OwnerID:  ownerID,
		Status:   models.JobStatusOpen,
		PostedAt: time.Now(),
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	effects := []Effect{
		EventEffect{Event: "jobCreated", Payload: job},
	}

	// The announcement goes out even when the token lookup fails; only the
	// push itself is skipped then.
	tokens, err := s.users.BroadcastDeviceTokens(ctx, ownerID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load broadcast device tokens", err, "job_id", job.ID)
	} else if len(tokens) > 0 {
		effects = append(effects, PushEffect{
			DeviceTokens: tokens,
			Type:         models.NotificationTypeNewJob,
			Title:        "New Job Posted!",
			Message:      fmt.Sprintf("%s - %s", job.Title, job.Address),
			Data:         map[string]interface{}{"jobId": job.ID, "type": models.NotificationTypeNewJob},
		})
	}
	s.dispatcher.Dispatch(effects)

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "owner_id", ownerID)
	return job, nil
}

// ListJobs returns a page of jobs matching the criteria. Unless the caller
// asks for a specific status only open jobs are shown.
func (s *JobService) ListJobs(ctx context.Context, criteria *dto.JobListCriteria) (*dto.JobListResponse, error) {
	status := models.JobStatus(criteria.Status)
	if status == "" {
		status = models.JobStatusOpen
	}

	paging := pagination.Params{Page: criteria.Page, Limit: criteria.Limit}.Normalize()
	jobs, total, err := s.jobs.Search(ctx, repositories.JobFilter{
		Title:    criteria.Title,
		Category: criteria.Category,
		Status:   status,
		Paging:   paging,
	})
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	return &dto.JobListResponse{
		Jobs:       jobs,
		Pagination: pagination.NewMeta(paging, total),
	}, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UpstreamError(err)
	}
	return job, nil
}

// DeleteJob removes a job. Owner only.
func (s *JobService) DeleteJob(ctx context.Context, actorID, jobID string) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	if job.OwnerID != actorID {
		return apperrors.ErrNotJobOwner
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}

	s.dispatcher.Dispatch([]Effect{
		EventEffect{Event: "jobDeleted", Payload: map[string]interface{}{"jobId": jobID}},
	})
	logger.CtxInfo(ctx, "job deleted", "job_id", jobID, "owner_id", actorID)
	return nil
}

// CompleteJob moves an approved job to completed. Owner only; the
// conditional update arbitrates concurrent completions.
func (s *JobService) CompleteJob(ctx context.Context, actorID, jobID string) (*models.Job, error) {
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

	if err := s.jobs.Complete(ctx, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobStatusChanged) {
			return nil, apperrors.ErrJobNotApproved
		}
		return nil, apperrors.UpstreamError(err)
	}
	job.Status = models.JobStatusCompleted

	payload := map[string]interface{}{"jobId": jobID}
	if job.AssigneeID != nil {
		payload["assignedTo"] = *job.AssigneeID
	}
	s.dispatcher.Dispatch([]Effect{
		EventEffect{Event: "jobCompleted", Payload: payload},
	})

	logger.CtxInfo(ctx, "job completed", "job_id", jobID)
	return job, nil
}

// ApprovedJobs is the dashboard view of jobs the caller participates in,
// annotated with what the caller can do next on each job.
func (s *JobService) ApprovedJobs(ctx context.Context, actorID string) ([]dto.ApprovedJobView, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	jobs, err := s.jobs.FindParticipating(ctx, actorID,
		[]models.JobStatus{models.JobStatusApproved, models.JobStatusCompleted})
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	jobIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}
	reviewed, err := s.reviews.ReviewedJobIDs(ctx, actorID, jobIDs)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	views := make([]dto.ApprovedJobView, 0, len(jobs))
	for _, job := range jobs {
		isOwner := job.OwnerID == actorID
		isAssignee := job.AssigneeID != nil && *job.AssigneeID == actorID
		completed := job.Status == models.JobStatusCompleted

		view := dto.ApprovedJobView{
			Job:                    job,
			IsOwner:                isOwner,
			IsAssignee:             isAssignee,
			CanComplete:            isOwner && job.Status == models.JobStatusApproved,
			CanReview:              completed && (isOwner || isAssignee) && !reviewed[job.ID],
			HasCurrentUserReviewed: reviewed[job.ID],
		}
		if job.Owner != nil {
			view.OwnerName = job.Owner.Name
		}
		if job.Assignee != nil {
			view.AssigneeName = job.Assignee.Name
		}
		views = append(views, view)
	}
	return views, nil
}
