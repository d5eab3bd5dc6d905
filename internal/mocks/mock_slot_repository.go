package mocks

import (
	"context"
	"time"

	"github.com/you/medbooksvc/domain"
)

// MockSlotRepository implements domain.SlotRepository for testing
type MockSlotRepository struct {
	CreateFunc           func(ctx context.Context, slot *domain.AvailabilitySlot) error
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error)
	ListByDoctorFunc     func(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error)
	ListOpenByDoctorFunc func(ctx context.Context, doctorID uint, from time.Time) ([]*domain.AvailabilitySlot, error)
	SetBookedFunc        func(ctx context.Context, id uint, booked bool) error
	DeleteFunc           func(ctx context.Context, id uint) error
}

// NewMockSlotRepository creates a new MockSlotRepository with default behaviors
func NewMockSlotRepository() *MockSlotRepository {
	return &MockSlotRepository{}
}

// Create creates a new slot
func (m *MockSlotRepository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, slot)
	}
	return nil
}

// FindByID finds a slot by ID
func (m *MockSlotRepository) FindByID(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrSlotNotFound
}

// ListByDoctor lists a doctor's slots
func (m *MockSlotRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	if m.ListByDoctorFunc != nil {
		return m.ListByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

// ListOpenByDoctor lists a doctor's open future slots
func (m *MockSlotRepository) ListOpenByDoctor(ctx context.Context, doctorID uint, from time.Time) ([]*domain.AvailabilitySlot, error) {
	if m.ListOpenByDoctorFunc != nil {
		return m.ListOpenByDoctorFunc(ctx, doctorID, from)
	}
	return nil, nil
}

// SetBooked toggles the slot's booked flag
func (m *MockSlotRepository) SetBooked(ctx context.Context, id uint, booked bool) error {
	if m.SetBookedFunc != nil {
		return m.SetBookedFunc(ctx, id, booked)
	}
	return nil
}

// Delete removes a slot
func (m *MockSlotRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.SlotRepository = (*MockSlotRepository)(nil)
