// Package auth issues and verifies the JWT pair used by the API: a
// short-lived access token carrying user id and phone, and a long-lived
// refresh token carrying only the user id. Refresh tokens are additionally
// pinned server-side as a bcrypt hash on the user record, so a stolen token
// dies on the next rotation.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rapidjobs_backend/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	UserID string `json:"id"`
	Phone  string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GenerateTokens issues a fresh access/refresh pair for the user.
func GenerateTokens(userID, phone string) (*TokenPair, error) {
	cfg := config.GetConfig()
	now := time.Now()

	accessClaims := &Claims{
		UserID: userID,
		Phone:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWT.AccessTTLMin) * time.Minute)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	// A unique id makes every refresh token distinct, so rotation always
	// invalidates the previous one.
	refreshClaims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 0, cfg.JWT.RefreshTTLDay)),
		},
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(cfg.JWT.RefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseToken verifies an access token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.Secret)
}

// ParseRefreshToken verifies a refresh token and returns its claims.
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.RefreshSecret)
}

func parse(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashRefreshToken produces the bcrypt hash stored on the user record.
func HashRefreshToken(token string) (string, error) {
	// bcrypt input is capped at 72 bytes; hash a digest-sized suffix of the
	// JWT signature instead of the whole token.
	bytes, err := bcrypt.GenerateFromPassword(tokenDigest(token), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckRefreshToken compares a presented refresh token against the stored
// hash.
func CheckRefreshToken(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), tokenDigest(token)) == nil
}

func tokenDigest(token string) []byte {
	if len(token) > 64 {
		return []byte(token[len(token)-64:])
	}
	return []byte(token)
}
