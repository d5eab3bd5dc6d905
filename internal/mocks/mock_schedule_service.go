package mocks

import (
	"context"
	"time"

	"github.com/you/medbooksvc/domain"
)

// MockScheduleService implements domain.ScheduleService for testing
type MockScheduleService struct {
	AddSlotFunc    func(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*domain.AvailabilitySlot, error)
	ListSlotsFunc  func(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error)
	RemoveSlotFunc func(ctx context.Context, doctorID, slotID uint) error
	OpenSlotsFunc  func(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error)
}

// NewMockScheduleService creates a new MockScheduleService with default behaviors
func NewMockScheduleService() *MockScheduleService {
	return &MockScheduleService{}
}

// AddSlot publishes a new availability slot
func (m *MockScheduleService) AddSlot(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*domain.AvailabilitySlot, error) {
	if m.AddSlotFunc != nil {
		return m.AddSlotFunc(ctx, doctorID, date, startTime, endTime)
	}
	return &domain.AvailabilitySlot{DoctorID: doctorID, Date: date, StartTime: startTime, EndTime: endTime}, nil
}

// ListSlots lists the doctor's slots
func (m *MockScheduleService) ListSlots(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	if m.ListSlotsFunc != nil {
		return m.ListSlotsFunc(ctx, doctorID)
	}
	return nil, nil
}

// RemoveSlot deletes an unbooked slot
func (m *MockScheduleService) RemoveSlot(ctx context.Context, doctorID, slotID uint) error {
	if m.RemoveSlotFunc != nil {
		return m.RemoveSlotFunc(ctx, doctorID, slotID)
	}
	return nil
}

// OpenSlots lists open future slots
func (m *MockScheduleService) OpenSlots(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	if m.OpenSlotsFunc != nil {
		return m.OpenSlotsFunc(ctx, doctorID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.ScheduleService = (*MockScheduleService)(nil)
