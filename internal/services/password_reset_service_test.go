package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/mocks"
)

func newResetServiceForTest(
	doctorRepo *mocks.MockDoctorRepository,
	notificationSvc *mocks.MockNotificationService,
	nowFn func() time.Time,
) *PasswordResetServiceImpl {
	svc := NewPasswordResetService(doctorRepo, mocks.NewMockPasswordService(), notificationSvc, 30*time.Minute)
	impl := svc.(*PasswordResetServiceImpl)
	if nowFn != nil {
		impl.now = nowFn
	}
	return impl
}

func TestPasswordResetServiceImpl_Request(t *testing.T) {
	t.Run("stores only a hash and mails the raw token", func(t *testing.T) {
		doctorRepo := mocks.NewMockDoctorRepository()
		notificationSvc := mocks.NewMockNotificationService()

		doctorRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Doctor, error) {
			return createValidDoctor(t), nil
		}
		var storedHash string
		var storedExpiry time.Time
		doctorRepo.SetResetTokenFunc = func(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error {
			storedHash = tokenHash
			storedExpiry = expiresAt
			return nil
		}

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		svc := newResetServiceForTest(doctorRepo, notificationSvc, func() time.Time { return base })

		if err := svc.Request(context.Background(), "asha@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if storedHash == "" {
			t.Fatal("expected a token hash to be stored")
		}
		if len(storedHash) != 64 {
			t.Errorf("expected a hex SHA-256 digest, got %d chars", len(storedHash))
		}
		if !storedExpiry.Equal(base.Add(30 * time.Minute)) {
			t.Errorf("expected expiry 30m from now, got %v", storedExpiry)
		}

		if notificationSvc.EmailCount() != 1 {
			t.Fatalf("expected exactly one email, got %d", notificationSvc.EmailCount())
		}
		email := notificationSvc.LastEmail()
		if email.To != "asha@example.com" {
			t.Errorf("email sent to %s", email.To)
		}
		if strings.Contains(email.Body, storedHash) {
			t.Error("the stored hash must never appear in the email")
		}
		// The mail must carry a token that hashes to the stored value
		raw := extractResetToken(t, email.Body)
		if hashOpaqueToken(raw) != storedHash {
			t.Error("mailed token does not match the stored hash")
		}
	})

	t.Run("unknown email succeeds without sending", func(t *testing.T) {
		doctorRepo := mocks.NewMockDoctorRepository()
		notificationSvc := mocks.NewMockNotificationService()

		svc := newResetServiceForTest(doctorRepo, notificationSvc, nil)
		if err := svc.Request(context.Background(), "nobody@example.com"); err != nil {
			t.Fatalf("unknown email must not surface an error, got %v", err)
		}
		if notificationSvc.EmailCount() != 0 {
			t.Error("no email should be sent for an unknown address")
		}
	})

	t.Run("mail failure clears the token and reports the error", func(t *testing.T) {
		doctorRepo := mocks.NewMockDoctorRepository()
		notificationSvc := mocks.NewMockNotificationService()

		doctorRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Doctor, error) {
			return createValidDoctor(t), nil
		}
		cleared := false
		doctorRepo.ClearResetTokenFunc = func(ctx context.Context, id uint) error {
			cleared = true
			return nil
		}
		notificationSvc.SendEmailFunc = func(to, subject, body string) error {
			return errors.New("smtp down")
		}

		svc := newResetServiceForTest(doctorRepo, notificationSvc, nil)
		err := svc.Request(context.Background(), "asha@example.com")
		if err == nil {
			t.Fatal("expected an error when the email cannot be sent")
		}
		if !cleared {
			t.Error("the stored token must be cleared when the email never leaves")
		}
	})
}

func TestPasswordResetServiceImpl_Reset(t *testing.T) {
	const rawToken = "a3f1c2d4e5b6a7f8091a2b3c4d5e6f708192a3b4"

	doctorWithToken := func(t *testing.T, expiresAt time.Time) *domain.Doctor {
		doctor := createValidDoctor(t)
		doctor.ResetTokenHash = hashOpaqueToken(rawToken)
		doctor.ResetTokenExpiresAt = &expiresAt
		return doctor
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		token         string
		newPassword   string
		setupRepo     func(*mocks.MockDoctorRepository)
		expectedError error
	}{
		{
			name:        "valid token resets the password",
			token:       rawToken,
			newPassword: "brandnewsecret",
			setupRepo: func(repo *mocks.MockDoctorRepository) {
				repo.FindByResetTokenHashFunc = func(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
					if tokenHash != hashOpaqueToken(rawToken) {
						return nil, domain.ErrDoctorNotFound
					}
					return doctorWithToken(t, base.Add(10*time.Minute)), nil
				}
			},
		},
		{
			name:          "unknown token",
			token:         "deadbeef",
			newPassword:   "brandnewsecret",
			setupRepo:     func(*mocks.MockDoctorRepository) {},
			expectedError: domain.ErrResetTokenInvalid,
		},
		{
			name:        "expired token",
			token:       rawToken,
			newPassword: "brandnewsecret",
			setupRepo: func(repo *mocks.MockDoctorRepository) {
				repo.FindByResetTokenHashFunc = func(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
					return doctorWithToken(t, base.Add(-time.Minute)), nil
				}
			},
			expectedError: domain.ErrResetTokenInvalid,
		},
		{
			name:        "new password too short",
			token:       rawToken,
			newPassword: "abc",
			setupRepo: func(repo *mocks.MockDoctorRepository) {
				repo.FindByResetTokenHashFunc = func(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
					return doctorWithToken(t, base.Add(10*time.Minute)), nil
				}
			},
			expectedError: domain.ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctorRepo := mocks.NewMockDoctorRepository()
			tt.setupRepo(doctorRepo)

			var storedHash string
			doctorRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash string) error {
				storedHash = passwordHash
				return nil
			}
			cleared := false
			doctorRepo.ClearResetTokenFunc = func(ctx context.Context, id uint) error {
				cleared = true
				return nil
			}

			svc := newResetServiceForTest(doctorRepo, mocks.NewMockNotificationService(), func() time.Time { return base })
			err := svc.Reset(context.Background(), tt.token, tt.newPassword)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				if storedHash != "" {
					t.Error("password must not change when the reset is rejected")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if storedHash != "hashed_brandnewsecret" {
				t.Errorf("expected new hash to be stored, got %q", storedHash)
			}
			if !cleared {
				t.Error("the token must be cleared after use")
			}
		})
	}
}

func TestHashResetToken(t *testing.T) {
	a := hashOpaqueToken("token-one")
	b := hashOpaqueToken("token-one")
	c := hashOpaqueToken("token-two")

	if a != b {
		t.Error("hashing must be deterministic")
	}
	if a == c {
		t.Error("different tokens must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

// extractResetToken pulls the 64-char hex token out of a reset email body
func extractResetToken(t *testing.T, body string) string {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 64 && !strings.ContainsAny(line, " .,") {
			return line
		}
	}
	t.Fatal("no reset token found in email body")
	return ""
}
