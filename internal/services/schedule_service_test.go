package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/mocks"
)

func TestScheduleServiceImpl_AddSlot(t *testing.T) {
	slotRepo := mocks.NewMockSlotRepository()
	var created *domain.AvailabilitySlot
	slotRepo.CreateFunc = func(ctx context.Context, slot *domain.AvailabilitySlot) error {
		slot.ID = 7
		created = slot
		return nil
	}

	svc := NewScheduleService(slotRepo)
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	slot, err := svc.AddSlot(context.Background(), 1, date, "09:00", "09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.ID != 7 {
		t.Errorf("expected assigned ID 7, got %d", slot.ID)
	}
	if created.DoctorID != 1 || created.StartTime != "09:00" || created.EndTime != "09:30" {
		t.Errorf("slot persisted with wrong fields: %+v", created)
	}
	if created.Booked {
		t.Error("new slots must start unbooked")
	}
}

func TestScheduleServiceImpl_RemoveSlot(t *testing.T) {
	tests := []struct {
		name          string
		doctorID      uint
		setupRepo     func(*mocks.MockSlotRepository)
		expectedError error
		expectDelete  bool
	}{
		{
			name:     "owner removes an open slot",
			doctorID: 1,
			setupRepo: func(repo *mocks.MockSlotRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
					return createOpenSlot(t), nil
				}
			},
			expectDelete: true,
		},
		{
			name:          "slot does not exist",
			doctorID:      1,
			setupRepo:     func(*mocks.MockSlotRepository) {},
			expectedError: domain.ErrSlotNotFound,
		},
		{
			name:     "another doctor's slot",
			doctorID: 2,
			setupRepo: func(repo *mocks.MockSlotRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
					return createOpenSlot(t), nil
				}
			},
			expectedError: domain.ErrSlotNotOwned,
		},
		{
			name:     "booked slot stays put",
			doctorID: 1,
			setupRepo: func(repo *mocks.MockSlotRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
					slot := createOpenSlot(t)
					slot.Booked = true
					return slot, nil
				}
			},
			expectedError: domain.ErrSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotRepo := mocks.NewMockSlotRepository()
			tt.setupRepo(slotRepo)
			deleted := false
			slotRepo.DeleteFunc = func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			}

			svc := NewScheduleService(slotRepo)
			err := svc.RemoveSlot(context.Background(), tt.doctorID, 10)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				if deleted {
					t.Error("the slot must not be deleted on a rejected removal")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectDelete && !deleted {
				t.Error("expected the slot to be deleted")
			}
		})
	}
}

func TestScheduleServiceImpl_OpenSlots_StartsFromToday(t *testing.T) {
	slotRepo := mocks.NewMockSlotRepository()
	var requestedFrom time.Time
	slotRepo.ListOpenByDoctorFunc = func(ctx context.Context, doctorID uint, from time.Time) ([]*domain.AvailabilitySlot, error) {
		requestedFrom = from
		return []*domain.AvailabilitySlot{createOpenSlot(t)}, nil
	}

	svc := NewScheduleService(slotRepo).(*ScheduleServiceImpl)
	now := time.Date(2026, 4, 10, 15, 42, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	slots, err := svc.OpenSlots(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected one slot, got %d", len(slots))
	}
	if !requestedFrom.Equal(now.Truncate(24 * time.Hour)) {
		t.Errorf("expected the cutoff at the start of today, got %v", requestedFrom)
	}
}
