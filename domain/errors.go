package domain

import "errors"

// Account errors
var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrLicenseTaken       = errors.New("license number already registered")
	ErrAccountDeactivated = errors.New("account deactivated")
)

// Password errors
var (
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrInvalidSpecialization = errors.New("unknown specialization")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Account verification errors
var (
	ErrVerificationTokenInvalid = errors.New("invalid verification token")
)

// Scheduling errors
var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrSlotNotOwned        = errors.New("slot belongs to another doctor")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment belongs to another doctor")
)

// Rate limiting errors
var (
	ErrRateLimited = errors.New("too many requests")
)
