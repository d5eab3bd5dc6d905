package services

import (
	"testing"
	"time"

	"github.com/you/medbooksvc/domain"
)

// createValidDoctor returns a doctor account in good standing for tests
func createValidDoctor(t *testing.T) *domain.Doctor {
	t.Helper()
	return &domain.Doctor{
		ID:             1,
		FirstName:      "Asha",
		LastName:       "Menon",
		Email:          "asha@example.com",
		PasswordHash:   "hashed_correcthorse",
		Specialization: "cardiology",
		LicenseNumber:  "LIC-1001",
		Hospital:       "City Hospital",
		Phone:          "+1234567890",
		IsVerified:     true,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// validRegisterInput returns a registration payload that passes validation
func validRegisterInput() domain.RegisterInput {
	return domain.RegisterInput{
		FirstName:      "Ravi",
		LastName:       "Iyer",
		Email:          "ravi@example.com",
		Password:       "supersecret",
		Specialization: "dermatology",
		LicenseNumber:  "LIC-2002",
		Hospital:       "Lakeside Clinic",
		Phone:          "+1987654321",
	}
}

// createOpenSlot returns an unbooked future slot owned by doctor 1
func createOpenSlot(t *testing.T) *domain.AvailabilitySlot {
	t.Helper()
	return &domain.AvailabilitySlot{
		ID:        10,
		DoctorID:  1,
		Date:      time.Now().Add(48 * time.Hour),
		StartTime: "10:00",
		EndTime:   "10:30",
		Booked:    false,
	}
}
