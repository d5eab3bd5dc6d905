package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/you/medbooksvc/domain"
)

// PasswordResetServiceImpl implements domain.PasswordResetService. Only the
// SHA-256 hash of a reset token is persisted; the raw token exists in the
// reset email alone.
type PasswordResetServiceImpl struct {
	doctorRepo      domain.DoctorRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	tokenTTL        time.Duration
	now             func() time.Time
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	doctorRepo domain.DoctorRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	tokenTTL time.Duration,
) domain.PasswordResetService {
	return &PasswordResetServiceImpl{
		doctorRepo:      doctorRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		tokenTTL:        tokenTTL,
		now:             time.Now,
	}
}

// Request implements domain.PasswordResetService. An unknown email returns
// nil so the handler's response never reveals whether the account exists.
func (s *PasswordResetServiceImpl) Request(ctx context.Context, email string) error {
	doctor, err := s.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrDoctorNotFound {
			return nil
		}
		return fmt.Errorf("failed to look up doctor: %w", err)
	}

	rawToken, err := generateOpaqueToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := s.now().Add(s.tokenTTL)
	if err := s.doctorRepo.SetResetToken(ctx, doctor.ID, hashOpaqueToken(rawToken), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body := fmt.Sprintf(
		"Hello Dr. %s,\n\nUse the token below to reset your password. It expires in %d minutes.\n\n%s\n\nIf you did not request this, ignore this email.",
		doctor.LastName, int(s.tokenTTL.Minutes()), rawToken,
	)
	if err := s.notificationSvc.SendEmail(doctor.Email, "Password reset request", body); err != nil {
		// The token is useless if the mail never arrived
		if clearErr := s.doctorRepo.ClearResetToken(ctx, doctor.ID); clearErr != nil {
			log.Printf("RESET_TOKEN_CLEANUP_FAILED: doctor_id=%d error=%v", doctor.ID, clearErr)
		}
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	log.Printf("RESET_REQUESTED: doctor_id=%d", doctor.ID)
	return nil
}

// Reset implements domain.PasswordResetService
func (s *PasswordResetServiceImpl) Reset(ctx context.Context, token, newPassword string) error {
	doctor, err := s.doctorRepo.FindByResetTokenHash(ctx, hashOpaqueToken(token))
	if err != nil {
		if err == domain.ErrDoctorNotFound {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if !doctor.HasPendingReset(s.now()) {
		return domain.ErrResetTokenInvalid
	}

	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.doctorRepo.UpdatePassword(ctx, doctor.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Clearing the token makes it single-use
	if err := s.doctorRepo.ClearResetToken(ctx, doctor.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	log.Printf("RESET_CONSUMED: doctor_id=%d", doctor.ID)
	return nil
}

// generateOpaqueToken returns a 32-byte random token as hex
func generateOpaqueToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashOpaqueToken returns the hex SHA-256 digest stored at rest
func hashOpaqueToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
