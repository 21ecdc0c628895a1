package services

import (
	"context"
	"errors"

	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/pkg/apperrors"
)

// ReviewService handles the post-completion rating exchange between a job's
// owner and assignee. Reviews are only accepted once the job is completed,
// only between the two participants, and at most once per reviewer per job.
type ReviewService struct {
	reviews    repositories.ReviewRepository
	jobs       repositories.JobRepository
	dispatcher EffectDispatcher
}

func NewReviewService(
	reviews repositories.ReviewRepository,
	jobs repositories.JobRepository,
	dispatcher EffectDispatcher,
) *ReviewService {
	return &ReviewService{reviews: reviews, jobs: jobs, dispatcher: dispatcher}
}

func (s *ReviewService) LeaveReview(ctx context.Context, actorID, jobID string, req *dto.CreateReviewRequest) (*models.Review, error) {
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
	if job.Status != models.JobStatusCompleted {
		return nil, apperrors.ErrJobNotCompleted
	}

	isOwner := job.OwnerID == actorID
	isAssignee := job.AssigneeID != nil && *job.AssigneeID == actorID
	if !isOwner && !isAssignee {
		return nil, apperrors.ErrNotJobParticipant
	}

	// The reviewee is always the other participant, never a free choice.
	expected := job.OwnerID
	if isOwner {
		if job.AssigneeID == nil {
			return nil, apperrors.ErrRevieweeMismatch
		}
		expected = *job.AssigneeID
	}
	if req.RevieweeID != expected {
		return nil, apperrors.ErrRevieweeMismatch
	}

	review := &models.Review{
		JobID:      jobID,
		ReviewerID: actorID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.UpstreamError(err)
	}

	s.dispatcher.Dispatch([]Effect{
		EventEffect{Event: "reviewCreated", Payload: map[string]interface{}{
			"jobId":      jobID,
			"reviewerId": actorID,
			"revieweeId": req.RevieweeID,
			"rating":     req.Rating,
		}},
	})

	logger.CtxInfo(ctx, "review created", "job_id", jobID, "reviewee_id", req.RevieweeID, "rating", req.Rating)
	return review, nil
}

// ListUserReviews returns the reviews received by a user, newest first.
func (s *ReviewService) ListUserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	reviews, err := s.reviews.ListByReviewee(ctx, userID)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
