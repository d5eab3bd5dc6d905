package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/medbooksvc/domain"
)

// ScheduleServiceImpl implements domain.ScheduleService
type ScheduleServiceImpl struct {
	slotRepo domain.SlotRepository
	now      func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(slotRepo domain.SlotRepository) domain.ScheduleService {
	return &ScheduleServiceImpl{
		slotRepo: slotRepo,
		now:      time.Now,
	}
}

// AddSlot implements domain.ScheduleService
func (s *ScheduleServiceImpl) AddSlot(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*domain.AvailabilitySlot, error) {
	slot := &domain.AvailabilitySlot{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

// ListSlots implements domain.ScheduleService
func (s *ScheduleServiceImpl) ListSlots(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	return s.slotRepo.ListByDoctor(ctx, doctorID)
}

// RemoveSlot implements domain.ScheduleService. A booked slot stays put
// until its appointment is cancelled.
func (s *ScheduleServiceImpl) RemoveSlot(ctx context.Context, doctorID, slotID uint) error {
	slot, err := s.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.DoctorID != doctorID {
		return domain.ErrSlotNotOwned
	}
	if slot.Booked {
		return domain.ErrSlotTaken
	}
	return s.slotRepo.Delete(ctx, slotID)
}

// OpenSlots implements domain.ScheduleService. Only unbooked future slots
// are exposed to patients.
func (s *ScheduleServiceImpl) OpenSlots(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	from := s.now().Truncate(24 * time.Hour)
	return s.slotRepo.ListOpenByDoctor(ctx, doctorID, from)
}
