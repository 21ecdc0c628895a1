package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rapidjobs_backend/internal/models"
)

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrRequestAlreadyExists = errors.New("request already exists for this job and user")
	ErrRequestNotPending    = errors.New("request is not pending")
	ErrJobNotOpen           = errors.New("job is not open for assignment")
)

type RequestRepository interface {
	// Create relies on the (job_id, user_id) unique index to arbitrate
	// concurrent duplicates; a constraint hit comes back as
	// ErrRequestAlreadyExists.
	Create(ctx context.Context, req *models.Request) error
	FindByID(ctx context.Context, id string) (*models.Request, error)
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Request, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Request, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Request, error)

	// Approve flips the request pending -> approved and assigns the job
	// (open -> approved, assignee = requester) in one transaction. Either
	// conditional update matching no row aborts with ErrRequestNotPending /
	// ErrJobNotOpen.
	Approve(ctx context.Context, req *models.Request) error

	// Reject flips the request pending -> rejected. The job is never touched.
	Reject(ctx context.Context, requestID string) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *models.Request) error {
	err := r.db.WithContext(ctx).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRequestAlreadyExists
	}
	return err
}

func (r *requestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	err := r.db.WithContext(ctx).Preload("Requester").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Request, error) {
	var req models.Request
	err := r.db.WithContext(ctx).
		First(&req, "job_id = ? AND user_id = ?", jobID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListByJob(ctx context.Context, jobID string) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).Preload("Requester").
		Where("job_id = ?", jobID).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).Preload("Requester").Preload("Job").
		Where("owner_post_id = ?", ownerID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) Approve(ctx context.Context, req *models.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", req.ID, models.RequestStatusPending).
			Update("status", models.RequestStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		res = tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", req.JobID, models.JobStatusOpen).
			Updates(map[string]interface{}{
				"status":      models.JobStatusApproved,
				"assignee_id": req.UserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrJobNotOpen
		}

		return nil
	})
}

func (r *requestRepository) Reject(ctx context.Context, requestID string) error {
	res := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Update("status", models.RequestStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotPending
	}
	return nil
}
