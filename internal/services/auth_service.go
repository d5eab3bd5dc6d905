package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/you/medbooksvc/domain"
)

const minPasswordLength = 6

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	doctorRepo      domain.DoctorRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
}

// NewAuthService creates a new auth service
func NewAuthService(
	doctorRepo domain.DoctorRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
) domain.AuthService {
	return &AuthServiceImpl{
		doctorRepo:      doctorRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if !domain.IsValidSpecialization(input.Specialization) {
		return nil, domain.ErrInvalidSpecialization
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	// Distinct conflict errors so the client knows which field collided
	if existing, err := s.doctorRepo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if existing, err := s.doctorRepo.FindByLicense(ctx, input.LicenseNumber); err == nil && existing != nil {
		return nil, domain.ErrLicenseTaken
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken, err := generateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	doctor := &domain.Doctor{
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Email:                 input.Email,
		PasswordHash:          hashedPassword,
		Specialization:        input.Specialization,
		LicenseNumber:         input.LicenseNumber,
		Hospital:              input.Hospital,
		Phone:                 input.Phone,
		IsActive:              true,
		VerificationTokenHash: hashOpaqueToken(verifyToken),
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		// A concurrent duplicate slips past the pre-checks and hits the
		// unique index instead
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrLicenseTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	token, err := s.tokenSvc.Generate(doctor.ID, doctor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Welcome mail carries the verification token and is best-effort; it
	// must never block registration
	go func(email, name, verifyToken string) {
		body := fmt.Sprintf(
			"Hello Dr. %s,\n\nYour account has been created. Verify it to appear in the public directory using this token:\n%s\n\nYou can already manage your profile and availability.",
			name, verifyToken,
		)
		if err := s.notificationSvc.SendEmail(email, "Welcome to MedBook", body); err != nil {
			log.Printf("WELCOME_EMAIL_FAILED: email=%s error=%v", email, err)
		}
	}(doctor.Email, doctor.LastName, verifyToken)

	log.Printf("DOCTOR_REGISTERED: doctor_id=%d email=%s license=%s", doctor.ID, doctor.Email, doctor.LicenseNumber)

	return &domain.AuthResult{
		Doctor:    doctor,
		Token:     token,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// VerifyAccount implements domain.AuthService. The token is single-use;
// verifying clears it and lists the doctor in the public directory.
func (s *AuthServiceImpl) VerifyAccount(ctx context.Context, token string) error {
	doctor, err := s.doctorRepo.FindByVerificationTokenHash(ctx, hashOpaqueToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			return domain.ErrVerificationTokenInvalid
		}
		return err
	}

	if err := s.doctorRepo.MarkVerified(ctx, doctor.ID); err != nil {
		return fmt.Errorf("failed to mark doctor verified: %w", err)
	}

	log.Printf("DOCTOR_VERIFIED: doctor_id=%d email=%s", doctor.ID, doctor.Email)
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	doctor, err := s.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(doctor.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	// Checked after the password so the distinct message only reaches the
	// account owner
	if !doctor.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	now := time.Now()
	if err := s.doctorRepo.UpdateLastLogin(ctx, doctor.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	doctor.LastLoginAt = &now

	token, err := s.tokenSvc.Generate(doctor.ID, doctor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("DOCTOR_LOGIN: doctor_id=%d email=%s", doctor.ID, doctor.Email)

	return &domain.AuthResult{
		Doctor:    doctor,
		Token:     token,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, doctorID uint) (*domain.Doctor, error) {
	return s.doctorRepo.FindByID(ctx, doctorID)
}

// UpdateProfile implements domain.AuthService. Only whitelisted fields are
// mutable; email and license number never change after registration.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, doctorID uint, update domain.ProfileUpdate) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		doctor.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		doctor.LastName = *update.LastName
	}
	if update.Specialization != nil {
		if !domain.IsValidSpecialization(*update.Specialization) {
			return nil, domain.ErrInvalidSpecialization
		}
		doctor.Specialization = *update.Specialization
	}
	if update.Hospital != nil {
		doctor.Hospital = *update.Hospital
	}
	if update.Phone != nil {
		doctor.Phone = *update.Phone
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return doctor, nil
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, doctorID uint, currentPassword, newPassword string) error {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(doctor.PasswordHash, currentPassword) {
		return domain.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.doctorRepo.UpdatePassword(ctx, doctorID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_CHANGED: doctor_id=%d", doctorID)
	return nil
}
