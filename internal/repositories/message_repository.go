package repositories

import (
	"context"

	"gorm.io/gorm"

	"rapidjobs_backend/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error

	// History returns the conversation inside one job between two users,
	// oldest first.
	History(ctx context.Context, jobID, userA, userB string) ([]models.Message, error)

	// ListForUser returns every message the user sent or received, newest
	// first. The rooms projection is derived from this in the service.
	ListForUser(ctx context.Context, userID string) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) History(ctx context.Context, jobID, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp DESC").
		Find(&messages).Error
	return messages, err
}
