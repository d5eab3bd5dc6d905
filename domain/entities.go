package domain

import "time"

// Specializations is the fixed set of medical categories a doctor may register under.
var Specializations = []string{
	"cardiology",
	"dermatology",
	"general_medicine",
	"gynecology",
	"neurology",
	"orthopedics",
	"pediatrics",
	"psychiatry",
	"radiology",
	"urology",
}

// IsValidSpecialization reports whether s is one of the fixed medical categories.
func IsValidSpecialization(s string) bool {
	for _, valid := range Specializations {
		if s == valid {
			return true
		}
	}
	return false
}

// Doctor represents a registered doctor account
type Doctor struct {
	ID                    uint
	FirstName             string
	LastName              string
	Email                 string
	PasswordHash          string `gorm:"column:password"`
	Specialization        string
	LicenseNumber         string
	Hospital              string
	Phone                 string
	IsVerified            bool
	IsActive              bool
	LastLoginAt           *time.Time
	ResetTokenHash        string
	ResetTokenExpiresAt   *time.Time
	VerificationTokenHash string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DoctorView is the client-facing shape of a doctor account. The password
// hash and reset-token fields never leave the service layer.
type DoctorView struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Specialization string     `json:"specialization"`
	LicenseNumber  string     `json:"license_number"`
	Hospital       string     `json:"hospital"`
	Phone          string     `json:"phone"`
	IsVerified     bool       `json:"is_verified"`
	IsActive       bool       `json:"is_active"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// View returns the sanitized client-facing copy of the doctor.
func (d *Doctor) View() *DoctorView {
	return &DoctorView{
		ID:             d.ID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Specialization: d.Specialization,
		LicenseNumber:  d.LicenseNumber,
		Hospital:       d.Hospital,
		Phone:          d.Phone,
		IsVerified:     d.IsVerified,
		IsActive:       d.IsActive,
		LastLoginAt:    d.LastLoginAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// HasPendingReset reports whether an unexpired reset token is outstanding.
func (d *Doctor) HasPendingReset(now time.Time) bool {
	return d.ResetTokenHash != "" && d.ResetTokenExpiresAt != nil && d.ResetTokenExpiresAt.After(now)
}

// AuthResult represents authentication outcome
type AuthResult struct {
	Doctor    *Doctor
	Token     string
	ExpiresIn int64
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	DoctorID  uint   `json:"doctor_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Appointment status values.
const (
	AppointmentBooked    = "booked"
	AppointmentCancelled = "cancelled"
)

// AvailabilitySlot is a bookable consultation window published by a doctor.
type AvailabilitySlot struct {
	ID        uint      `json:"id"`
	DoctorID  uint      `json:"doctor_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Booked    bool      `json:"booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Appointment is a patient booking against a doctor's availability slot.
type Appointment struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	DoctorID     uint      `json:"doctor_id"`
	SlotID       uint      `json:"slot_id"`
	PatientName  string    `json:"patient_name"`
	PatientEmail string    `json:"patient_email"`
	PatientPhone string    `json:"patient_phone"`
	HealthIssue  string    `json:"health_issue"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterInput carries validated registration fields into the auth service.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Specialization string
	LicenseNumber  string
	Hospital       string
	Phone          string
}

// ProfileUpdate is the whitelist of mutable profile fields. Nil pointers
// leave the corresponding field untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Specialization *string
	Hospital       *string
	Phone          *string
}

// BookingInput carries validated booking fields into the appointment service.
type BookingInput struct {
	SlotID       uint
	PatientName  string
	PatientEmail string
	PatientPhone string
	HealthIssue  string
}
