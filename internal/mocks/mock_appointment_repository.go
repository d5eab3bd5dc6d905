package mocks

import (
	"context"

	"github.com/you/medbooksvc/domain"
)

// MockAppointmentRepository implements domain.AppointmentRepository for testing
type MockAppointmentRepository struct {
	CreateFunc       func(ctx context.Context, appt *domain.Appointment) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Appointment, error)
	ListByDoctorFunc func(ctx context.Context, doctorID uint) ([]*domain.Appointment, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) error
}

// NewMockAppointmentRepository creates a new MockAppointmentRepository with default behaviors
func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{}
}

// Create creates a new appointment
func (m *MockAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appt)
	}
	return nil
}

// FindByID finds an appointment by ID
func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAppointmentNotFound
}

// ListByDoctor lists a doctor's appointments
func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]*domain.Appointment, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

// UpdateStatus updates an appointment's status
func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AppointmentRepository = (*MockAppointmentRepository)(nil)
