package services

import (
	"context"
	"errors"

	"rapidjobs_backend/internal/auth"
	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/internal/verify"
	"rapidjobs_backend/pkg/apperrors"
)

// AuthService implements the phone-OTP identity flow: an OTP is started for
// the phone, and a successful check either creates the user or marks the
// existing one verified, then issues the JWT pair. The refresh token is
// pinned as a bcrypt hash on the user row and rotated on every refresh.
type AuthService struct {
	users    repositories.UserRepository
	verifier verify.Provider
}

func NewAuthService(users repositories.UserRepository, verifier verify.Provider) *AuthService {
	return &AuthService{users: users, verifier: verifier}
}

// Register starts OTP verification for a new account. A phone that already
// belongs to a verified user is a conflict; an unverified stub just gets a
// fresh code.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	user, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.UpstreamError(err)
	}
	if user != nil && user.IsVerified {
		return apperrors.ErrUserAlreadyVerified
	}

	if err := s.verifier.Start(ctx, req.Phone); err != nil {
		return apperrors.UpstreamError(err)
	}

	logger.CtxInfo(ctx, "otp started", "flow", "register")
	return nil
}

// Login starts OTP verification for an existing verified account.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) error {
	user, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	if !user.IsVerified {
		return apperrors.ErrUserNotVerified
	}

	if err := s.verifier.Start(ctx, req.Phone); err != nil {
		return apperrors.UpstreamError(err)
	}

	logger.CtxInfo(ctx, "otp started", "flow", "login")
	return nil
}

// VerifyOTP checks the code and completes either flow: it creates the user
// (name required then), or verifies the existing one, and issues tokens.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	ok, err := s.verifier.Check(ctx, req.Phone, req.Code)
	if err != nil {
		return nil, apperrors.UpstreamError(err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidVerificationCode
	}

	user, err := s.users.FindByPhone(ctx, req.Phone)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		if req.Name == "" {
			return nil, apperrors.NewBadRequestError("Name is required for a new account")
		}
		user = &models.User{
			Phone:                req.Phone,
			Name:                 req.Name,
			IsVerified:           true,
			NotificationsEnabled: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return nil, apperrors.ErrAlreadyExists(err)
			}
			return nil, apperrors.UpstreamError(err)
		}
	case err != nil:
		return nil, apperrors.UpstreamError(err)
	default:
		user.IsVerified = true
		if req.Name != "" {
			user.Name = req.Name
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, apperrors.UpstreamError(err)
		}
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must both
// verify and match the pinned hash, so a rotated-away token is dead even
// before it expires.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	claims, err := auth.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.UpstreamError(err)
	}
	if user.RefreshTokenHash == "" || !auth.CheckRefreshToken(req.RefreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the current refresh token.
func (s *AuthService) Logout(ctx context.Context, actorID string) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if err := s.users.UpdateRefreshTokenHash(ctx, actorID, ""); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	logger.CtxInfo(ctx, "user logged out")
	return nil
}

// RegisterDeviceToken stores the push token of the caller's device.
func (s *AuthService) RegisterDeviceToken(ctx context.Context, actorID string, req *dto.DeviceTokenRequest) error {
	if actorID == "" {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	token := req.DeviceToken
	if err := s.users.UpdateDeviceToken(ctx, actorID, &token); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UpstreamError(err)
	}
	return nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, actorID string) (*models.User, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UpstreamError(err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	pair, err := auth.GenerateTokens(user.ID, user.Phone)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashRefreshToken(pair.RefreshToken)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.UpdateRefreshTokenHash(ctx, user.ID, hash); err != nil {
		return nil, apperrors.UpstreamError(err)
	}

	logger.CtxInfo(ctx, "tokens issued", "user_id", user.ID)
	return &dto.AuthResponse{
		UserID:       user.ID,
		Name:         user.Name,
		Phone:        user.Phone,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
