package verify

import (
	"context"

	"rapidjobs_backend/internal/logger"
)

// MockProvider accepts a single fixed code. Used in development and tests so
// no SMS leaves the machine.
type MockProvider struct {
	Code string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{Code: "000000"}
}

func (p *MockProvider) Start(_ context.Context, phone string) error {
	logger.Warn("verify: mock provider in use, no SMS sent", "phone", phone)
	return nil
}

func (p *MockProvider) Check(_ context.Context, _ string, code string) (bool, error) {
	return code == p.Code, nil
}
