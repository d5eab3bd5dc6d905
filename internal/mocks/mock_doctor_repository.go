package mocks

import (
	"context"
	"time"

	"github.com/you/medbooksvc/domain"
)

// MockDoctorRepository implements domain.DoctorRepository for testing
type MockDoctorRepository struct {
	CreateFunc                      func(ctx context.Context, doctor *domain.Doctor) error
	FindByEmailFunc                 func(ctx context.Context, email string) (*domain.Doctor, error)
	FindByLicenseFunc               func(ctx context.Context, license string) (*domain.Doctor, error)
	FindByIDFunc                    func(ctx context.Context, id uint) (*domain.Doctor, error)
	FindByResetTokenHashFunc        func(ctx context.Context, tokenHash string) (*domain.Doctor, error)
	FindByVerificationTokenHashFunc func(ctx context.Context, tokenHash string) (*domain.Doctor, error)
	ListVerifiedFunc                func(ctx context.Context) ([]*domain.Doctor, error)
	UpdateFunc                      func(ctx context.Context, doctor *domain.Doctor) error
	UpdateLastLoginFunc             func(ctx context.Context, id uint, at time.Time) error
	UpdatePasswordFunc              func(ctx context.Context, id uint, passwordHash string) error
	SetResetTokenFunc               func(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error
	ClearResetTokenFunc             func(ctx context.Context, id uint) error
	MarkVerifiedFunc                func(ctx context.Context, id uint) error
}

// NewMockDoctorRepository creates a new MockDoctorRepository with default behaviors
func NewMockDoctorRepository() *MockDoctorRepository {
	return &MockDoctorRepository{}
}

// Create creates a new doctor
func (m *MockDoctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doctor)
	}
	return nil
}

// FindByEmail finds a doctor by email
func (m *MockDoctorRepository) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrDoctorNotFound
}

// FindByLicense finds a doctor by license number
func (m *MockDoctorRepository) FindByLicense(ctx context.Context, license string) (*domain.Doctor, error) {
	if m.FindByLicenseFunc != nil {
		return m.FindByLicenseFunc(ctx, license)
	}
	return nil, domain.ErrDoctorNotFound
}

// FindByID finds a doctor by ID
func (m *MockDoctorRepository) FindByID(ctx context.Context, id uint) (*domain.Doctor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrDoctorNotFound
}

// FindByResetTokenHash finds a doctor by stored reset token hash
func (m *MockDoctorRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
	if m.FindByResetTokenHashFunc != nil {
		return m.FindByResetTokenHashFunc(ctx, tokenHash)
	}
	return nil, domain.ErrDoctorNotFound
}

// FindByVerificationTokenHash finds a doctor by stored verification token hash
func (m *MockDoctorRepository) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
	if m.FindByVerificationTokenHashFunc != nil {
		return m.FindByVerificationTokenHashFunc(ctx, tokenHash)
	}
	return nil, domain.ErrDoctorNotFound
}

// ListVerified lists verified active doctors
func (m *MockDoctorRepository) ListVerified(ctx context.Context) ([]*domain.Doctor, error) {
	if m.ListVerifiedFunc != nil {
		return m.ListVerifiedFunc(ctx)
	}
	return nil, nil
}

// Update updates an existing doctor
func (m *MockDoctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, doctor)
	}
	return nil
}

// UpdateLastLogin stamps the doctor's last login time
func (m *MockDoctorRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id, at)
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (m *MockDoctorRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// SetResetToken stores a reset token hash and expiry
func (m *MockDoctorRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, tokenHash, expiresAt)
	}
	return nil
}

// ClearResetToken clears any stored reset token
func (m *MockDoctorRepository) ClearResetToken(ctx context.Context, id uint) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, id)
	}
	return nil
}

// MarkVerified flips the account into the public directory
func (m *MockDoctorRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.DoctorRepository = (*MockDoctorRepository)(nil)
