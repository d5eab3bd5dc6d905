package mocks

import (
	"fmt"
	"time"

	"github.com/you/medbooksvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(doctorID uint, email string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc      func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate issues a token
func (m *MockTokenService) Generate(doctorID uint, email string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(doctorID, email)
	}
	return fmt.Sprintf("token_%d", doctorID), nil
}

// Validate validates a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// TTL reports the configured token lifetime
func (m *MockTokenService) TTL() time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc()
	}
	return 7 * 24 * time.Hour
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
