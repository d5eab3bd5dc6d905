package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/medbooksvc/domain"
)

// AppointmentRepositoryImpl implements domain.AppointmentRepository using GORM
type AppointmentRepositoryImpl struct {
	db *gorm.DB
}

// DBAppointment represents the database model for Appointment
type DBAppointment struct {
	ID           uint   `gorm:"primaryKey"`
	Reference    string `gorm:"uniqueIndex;size:36"`
	DoctorID     uint   `gorm:"index"`
	SlotID       uint   `gorm:"index"`
	PatientName  string `gorm:"size:200"`
	PatientEmail string `gorm:"size:255"`
	PatientPhone string `gorm:"size:32"`
	HealthIssue  string `gorm:"size:1000"`
	Status       string `gorm:"index;size:16"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBAppointment) TableName() string {
	return "appointments"
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domain.AppointmentRepository {
	return &AppointmentRepositoryImpl{db: db}
}

// Create implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appt *domain.Appointment) error {
	dbAppt := r.domainToDB(appt)
	if err := r.db.WithContext(ctx).Create(dbAppt).Error; err != nil {
		return err
	}
	appt.ID = dbAppt.ID
	appt.CreatedAt = dbAppt.CreatedAt
	appt.UpdatedAt = dbAppt.UpdatedAt
	return nil
}

// FindByID implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	var dbAppt DBAppointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAppt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAppt), nil
}

// ListByDoctor implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) ListByDoctor(ctx context.Context, doctorID uint) ([]*domain.Appointment, error) {
	var dbAppts []DBAppointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&dbAppts).Error
	if err != nil {
		return nil, err
	}

	appts := make([]*domain.Appointment, 0, len(dbAppts))
	for i := range dbAppts {
		appts = append(appts, r.dbToDomain(&dbAppts[i]))
	}
	return appts, nil
}

// UpdateStatus implements domain.AppointmentRepository
func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&DBAppointment{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *AppointmentRepositoryImpl) domainToDB(appt *domain.Appointment) *DBAppointment {
	return &DBAppointment{
		ID:           appt.ID,
		Reference:    appt.Reference,
		DoctorID:     appt.DoctorID,
		SlotID:       appt.SlotID,
		PatientName:  appt.PatientName,
		PatientEmail: appt.PatientEmail,
		PatientPhone: appt.PatientPhone,
		HealthIssue:  appt.HealthIssue,
		Status:       appt.Status,
	}
}

func (r *AppointmentRepositoryImpl) dbToDomain(dbAppt *DBAppointment) *domain.Appointment {
	return &domain.Appointment{
		ID:           dbAppt.ID,
		Reference:    dbAppt.Reference,
		DoctorID:     dbAppt.DoctorID,
		SlotID:       dbAppt.SlotID,
		PatientName:  dbAppt.PatientName,
		PatientEmail: dbAppt.PatientEmail,
		PatientPhone: dbAppt.PatientPhone,
		HealthIssue:  dbAppt.HealthIssue,
		Status:       dbAppt.Status,
		CreatedAt:    dbAppt.CreatedAt,
		UpdatedAt:    dbAppt.UpdatedAt,
	}
}
