package domain

import (
	"context"
	"time"
)

// DoctorRepository defines doctor account data access operations
type DoctorRepository interface {
	Create(ctx context.Context, doctor *Doctor) error
	FindByEmail(ctx context.Context, email string) (*Doctor, error)
	FindByLicense(ctx context.Context, license string) (*Doctor, error)
	FindByID(ctx context.Context, id uint) (*Doctor, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*Doctor, error)
	FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*Doctor, error)
	ListVerified(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, doctor *Doctor) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uint) error
	// MarkVerified flips the account into the public directory and
	// clears the verification token.
	MarkVerified(ctx context.Context, id uint) error
}

// SlotRepository defines availability slot data access operations
type SlotRepository interface {
	Create(ctx context.Context, slot *AvailabilitySlot) error
	FindByID(ctx context.Context, id uint) (*AvailabilitySlot, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]*AvailabilitySlot, error)
	ListOpenByDoctor(ctx context.Context, doctorID uint, from time.Time) ([]*AvailabilitySlot, error)
	// SetBooked with booked=true must claim the slot atomically and
	// return ErrSlotTaken when it is already claimed.
	SetBooked(ctx context.Context, id uint, booked bool) error
	Delete(ctx context.Context, id uint) error
}

// AppointmentRepository defines appointment data access operations
type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	FindByID(ctx context.Context, id uint) (*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// AuthService defines registration and authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	VerifyAccount(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, doctorID uint) (*Doctor, error)
	UpdateProfile(ctx context.Context, doctorID uint, update ProfileUpdate) (*Doctor, error)
	ChangePassword(ctx context.Context, doctorID uint, currentPassword, newPassword string) error
}

// PasswordResetService defines the forgot/reset password flow
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

// ScheduleService defines a doctor's availability slot management
type ScheduleService interface {
	AddSlot(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*AvailabilitySlot, error)
	ListSlots(ctx context.Context, doctorID uint) ([]*AvailabilitySlot, error)
	RemoveSlot(ctx context.Context, doctorID, slotID uint) error
	OpenSlots(ctx context.Context, doctorID uint) ([]*AvailabilitySlot, error)
}

// AppointmentService defines the patient booking flow
type AppointmentService interface {
	Book(ctx context.Context, input BookingInput) (*Appointment, error)
	ListForDoctor(ctx context.Context, doctorID uint) ([]*Appointment, error)
	Cancel(ctx context.Context, doctorID, appointmentID uint) (*Appointment, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations
type TokenService interface {
	Generate(doctorID uint, email string) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// NotificationService defines notification operations
type NotificationService interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
}

// RateLimiter defines per-key request throttling. Allow reports whether the
// request identified by key fits within the window; remaining is the number
// of requests left before the limit trips.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int64, err error)
}
