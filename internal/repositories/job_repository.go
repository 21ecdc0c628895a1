package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/pkg/pagination"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter is the listing contract: case-insensitive title substring, exact
// category, exact status, newest first.
type JobFilter struct {
	Title    string
	Category string
	Status   models.JobStatus
	Paging   pagination.Params
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error)

	// Complete moves a job from approved to completed. Returns
	// ErrJobStatusChanged when the job is not currently approved, so
	// concurrent owner actions cannot cause a lost update.
	Complete(ctx context.Context, jobID string) error

	// FindParticipating returns jobs where the user is owner or assignee and
	// the status is one of statuses, with Owner and Assignee preloaded.
	FindParticipating(ctx context.Context, userID string, statuses []models.JobStatus) ([]models.Job, error)

	// Titles resolves job ids to titles in one query.
	Titles(ctx context.Context, ids []string) (map[string]string, error)
}

// ErrJobStatusChanged signals a conditional status update that matched no
// row: the job moved out of the expected state under a concurrent action.
var ErrJobStatusChanged = errors.New("job status changed concurrently")

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("Owner").Preload("Assignee").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})

	if filter.Title != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	p := filter.Paging.Normalize()
	err := query.Preload("Owner").
		Order("posted_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepository) Complete(ctx context.Context, jobID string) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.JobStatusApproved).
		Update("status", models.JobStatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobStatusChanged
	}
	return nil
}

func (r *jobRepository) Titles(ctx context.Context, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	var rows []struct {
		ID    string
		Title string
	}
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Select("id, title").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

func (r *jobRepository) FindParticipating(ctx context.Context, userID string, statuses []models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Owner").Preload("Assignee").
		Where("owner_id = ? OR assignee_id = ?", userID, userID).
		Where("status IN ?", statuses).
		Order("posted_at DESC").
		Find(&jobs).Error
	return jobs, err
}
