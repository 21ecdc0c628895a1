package models

type User struct {
	BaseModel
	Phone      string `gorm:"uniqueIndex;not null" json:"phone"`
	Name       string `gorm:"not null" json:"name"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"`

	// Bcrypt hash of the currently valid refresh token. Rotated on every
	// refresh, cleared on logout.
	RefreshTokenHash string `json:"-"`

	DeviceToken          *string `json:"device_token,omitempty"`
	NotificationsEnabled bool    `gorm:"default:true" json:"notifications_enabled"`

	// Rating aggregates, recomputed whenever a review naming this user as
	// reviewee is created.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	ReviewsCount  int64   `gorm:"default:0" json:"reviews_count"`
}
