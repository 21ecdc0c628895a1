package dto

type RegisterRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Name  string `json:"name" validate:"required,min=2,max=100"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,min=4,max=10"`
	// Name is required only when the phone belongs to no existing user.
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
}

type LoginRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type DeviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required"`
}

type AuthResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
