package mocks

import (
	"context"

	"github.com/you/medbooksvc/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	VerifyAccountFunc  func(ctx context.Context, token string) error
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	ProfileFunc        func(ctx context.Context, doctorID uint) (*domain.Doctor, error)
	UpdateProfileFunc  func(ctx context.Context, doctorID uint, update domain.ProfileUpdate) (*domain.Doctor, error)
	ChangePasswordFunc func(ctx context.Context, doctorID uint, currentPassword, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a doctor
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return nil, domain.ErrInvalidCredentials
}

// VerifyAccount consumes a verification token
func (m *MockAuthService) VerifyAccount(ctx context.Context, token string) error {
	if m.VerifyAccountFunc != nil {
		return m.VerifyAccountFunc(ctx, token)
	}
	return domain.ErrVerificationTokenInvalid
}

// Login authenticates a doctor
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// Profile loads a doctor profile
func (m *MockAuthService) Profile(ctx context.Context, doctorID uint) (*domain.Doctor, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, doctorID)
	}
	return nil, domain.ErrDoctorNotFound
}

// UpdateProfile applies a whitelisted profile update
func (m *MockAuthService) UpdateProfile(ctx context.Context, doctorID uint, update domain.ProfileUpdate) (*domain.Doctor, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, doctorID, update)
	}
	return nil, domain.ErrDoctorNotFound
}

// ChangePassword replaces the doctor's password
func (m *MockAuthService) ChangePassword(ctx context.Context, doctorID uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, doctorID, currentPassword, newPassword)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
