package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rapidjobs_backend/internal/models"
)

var ErrReviewAlreadyExists = errors.New("review already exists for this job and reviewer")

type ReviewRepository interface {
	// Create inserts the review and recomputes the reviewee's rating
	// aggregates in the same transaction. A (job_id, reviewer_id) unique
	// violation comes back as ErrReviewAlreadyExists.
	Create(ctx context.Context, review *models.Review) error
	ListByReviewee(ctx context.Context, userID string) ([]models.Review, error)

	// ReviewedJobIDs returns which of jobIDs the reviewer has already
	// reviewed.
	ReviewedJobIDs(ctx context.Context, reviewerID string, jobIDs []string) (map[string]bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrReviewAlreadyExists
			}
			return err
		}

		// averageRating must stay the exact mean over all reviews naming
		// this user as reviewee, reviewsCount the exact count.
		var agg struct {
			Avg   float64
			Count int64
		}
		err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("reviewee_id = ?", review.RevieweeID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", review.RevieweeID).
			Updates(map[string]interface{}{
				"average_rating": agg.Avg,
				"reviews_count":  agg.Count,
			}).Error
	})
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Preload("Reviewer").
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ReviewedJobIDs(ctx context.Context, reviewerID string, jobIDs []string) (map[string]bool, error) {
	reviewed := make(map[string]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return reviewed, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("reviewer_id = ? AND job_id IN ?", reviewerID, jobIDs).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		reviewed[id] = true
	}
	return reviewed, nil
}
