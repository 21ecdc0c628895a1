package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapidjobs_backend/internal/config"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/services/dto"
	"rapidjobs_backend/internal/verify"
	"rapidjobs_backend/pkg/apperrors"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTLMin = 15
	cfg.JWT.RefreshTTLDay = 7
	config.AppConfig = cfg
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *verify.MockProvider) {
	users := newFakeUserRepo()
	provider := verify.NewMockProvider()
	return NewAuthService(users, provider), users, provider
}

func TestVerifyOTPCreatesNewUser(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Phone: "+77001234567", Name: "Aidar"}))

	resp, err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Phone: "+77001234567",
		Code:  "000000",
		Name:  "Aidar",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Aidar", resp.Name)

	user, err := users.FindByPhone(ctx, "+77001234567")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.NotEmpty(t, user.RefreshTokenHash)
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.VerifyOTP(context.Background(), &dto.VerifyOTPRequest{
		Phone: "+77001234567",
		Code:  "999999",
		Name:  "Aidar",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestVerifyOTPRequiresNameForNewAccounts(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.VerifyOTP(context.Background(), &dto.VerifyOTPRequest{
		Phone: "+77001234567",
		Code:  "000000",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestRegisterRejectsVerifiedPhone(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{
		Phone:      "+77001234567",
		Name:       "Aidar",
		IsVerified: true,
	}))

	err := svc.Register(ctx, &dto.RegisterRequest{Phone: "+77001234567", Name: "Aidar"})
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyVerified)
}

func TestLoginRequiresVerifiedUser(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	err := svc.Login(ctx, &dto.LoginRequest{Phone: "+77001234567"})
	require.Error(t, err)

	require.NoError(t, users.Create(ctx, &models.User{
		Phone:      "+77001234567",
		Name:       "Aidar",
		IsVerified: false,
	}))
	err = svc.Login(ctx, &dto.LoginRequest{Phone: "+77001234567"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	first, err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Phone: "+77001234567",
		Code:  "000000",
		Name:  "Aidar",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The first refresh token was rotated away and no longer matches the
	// pinned hash.
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Phone: "+77001234567",
		Code:  "000000",
		Name:  "Aidar",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.UserID))

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}
