package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rapidjobs_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	UpdateDeviceToken(ctx context.Context, userID string, token *string) error
	UpdateNotificationsEnabled(ctx context.Context, userID string, enabled bool) error
	UpdateRefreshTokenHash(ctx context.Context, userID, hash string) error
	UpdateRating(ctx context.Context, userID string, average float64, count int64) error

	// BroadcastDeviceTokens returns the device tokens of every verified user
	// except excludeUserID who has notifications enabled and a token set.
	BroadcastDeviceTokens(ctx context.Context, excludeUserID string) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateDeviceToken(ctx context.Context, userID string, token *string) error {
	return r.updateColumn(ctx, userID, "device_token", token)
}

func (r *userRepository) UpdateNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.updateColumn(ctx, userID, "notifications_enabled", enabled)
}

func (r *userRepository) UpdateRefreshTokenHash(ctx context.Context, userID, hash string) error {
	return r.updateColumn(ctx, userID, "refresh_token_hash", hash)
}

func (r *userRepository) UpdateRating(ctx context.Context, userID string, average float64, count int64) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"reviews_count":  count,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) BroadcastDeviceTokens(ctx context.Context, excludeUserID string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id <> ?", excludeUserID).
		Where("is_verified = ?", true).
		Where("notifications_enabled = ?", true).
		Where("device_token IS NOT NULL AND device_token <> ''").
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *userRepository) updateColumn(ctx context.Context, userID, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
