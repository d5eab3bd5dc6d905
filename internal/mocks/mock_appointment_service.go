package mocks

import (
	"context"

	"github.com/you/medbooksvc/domain"
)

// MockAppointmentService implements domain.AppointmentService for testing
type MockAppointmentService struct {
	BookFunc          func(ctx context.Context, input domain.BookingInput) (*domain.Appointment, error)
	ListForDoctorFunc func(ctx context.Context, doctorID uint) ([]*domain.Appointment, error)
	CancelFunc        func(ctx context.Context, doctorID, appointmentID uint) (*domain.Appointment, error)
}

// NewMockAppointmentService creates a new MockAppointmentService with default behaviors
func NewMockAppointmentService() *MockAppointmentService {
	return &MockAppointmentService{}
}

// Book books an appointment against a slot
func (m *MockAppointmentService) Book(ctx context.Context, input domain.BookingInput) (*domain.Appointment, error) {
	if m.BookFunc != nil {
		return m.BookFunc(ctx, input)
	}
	return nil, domain.ErrSlotNotFound
}

// ListForDoctor lists the doctor's appointments
func (m *MockAppointmentService) ListForDoctor(ctx context.Context, doctorID uint) ([]*domain.Appointment, error) {
	if m.ListForDoctorFunc != nil {
		return m.ListForDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

// Cancel cancels an appointment and frees its slot
func (m *MockAppointmentService) Cancel(ctx context.Context, doctorID, appointmentID uint) (*domain.Appointment, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, doctorID, appointmentID)
	}
	return nil, domain.ErrAppointmentNotFound
}

// Compile-time interface compliance verification
var _ domain.AppointmentService = (*MockAppointmentService)(nil)
