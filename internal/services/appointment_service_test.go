package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/mocks"
)

func validBookingInput() domain.BookingInput {
	return domain.BookingInput{
		SlotID:       10,
		PatientName:  "Meera Shah",
		PatientEmail: "meera@example.com",
		PatientPhone: "+1444555666",
		HealthIssue:  "Chest pain on exertion",
	}
}

func TestAppointmentServiceImpl_Book(t *testing.T) {
	t.Run("books an open slot", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		slotRepo := mocks.NewMockSlotRepository()
		doctorRepo := mocks.NewMockDoctorRepository()
		notificationSvc := mocks.NewMockNotificationService()

		slotRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
			return createOpenSlot(t), nil
		}
		doctorRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Doctor, error) {
			return createValidDoctor(t), nil
		}
		apptRepo.CreateFunc = func(ctx context.Context, appt *domain.Appointment) error {
			appt.ID = 5
			return nil
		}
		var bookedSlotID uint
		var bookedValue bool
		slotRepo.SetBookedFunc = func(ctx context.Context, id uint, booked bool) error {
			bookedSlotID = id
			bookedValue = booked
			return nil
		}

		svc := NewAppointmentService(apptRepo, slotRepo, doctorRepo, notificationSvc)
		appt, err := svc.Book(context.Background(), validBookingInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if appt.ID != 5 {
			t.Errorf("expected assigned ID 5, got %d", appt.ID)
		}
		if appt.Reference == "" {
			t.Error("expected a booking reference")
		}
		if appt.Status != domain.AppointmentBooked {
			t.Errorf("expected status %q, got %q", domain.AppointmentBooked, appt.Status)
		}
		if appt.DoctorID != 1 {
			t.Errorf("doctor must come from the slot, got %d", appt.DoctorID)
		}
		if bookedSlotID != 10 || !bookedValue {
			t.Error("expected the slot to be marked booked")
		}

		// Confirmation email and SMS go out asynchronously
		deadline := time.Now().Add(time.Second)
		for notificationSvc.EmailCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		email := notificationSvc.LastEmail()
		if email == nil {
			t.Fatal("expected a confirmation email")
		}
		if email.To != "meera@example.com" {
			t.Errorf("confirmation sent to %s", email.To)
		}
		if !strings.Contains(email.Body, appt.Reference) {
			t.Error("confirmation must carry the booking reference")
		}
	})

	t.Run("booked slot is rejected", func(t *testing.T) {
		slotRepo := mocks.NewMockSlotRepository()
		slotRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
			slot := createOpenSlot(t)
			slot.Booked = true
			return slot, nil
		}

		svc := NewAppointmentService(mocks.NewMockAppointmentRepository(), slotRepo, mocks.NewMockDoctorRepository(), mocks.NewMockNotificationService())
		_, err := svc.Book(context.Background(), validBookingInput())
		if !errors.Is(err, domain.ErrSlotTaken) {
			t.Errorf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc := NewAppointmentService(mocks.NewMockAppointmentRepository(), mocks.NewMockSlotRepository(), mocks.NewMockDoctorRepository(), mocks.NewMockNotificationService())
		_, err := svc.Book(context.Background(), validBookingInput())
		if !errors.Is(err, domain.ErrSlotNotFound) {
			t.Errorf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("only one of two simultaneous bookings wins", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		slotRepo := mocks.NewMockSlotRepository()
		doctorRepo := mocks.NewMockDoctorRepository()

		// Both bookings read the slot while it still looks free; the
		// claim itself decides the winner.
		slotRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
			return createOpenSlot(t), nil
		}
		doctorRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Doctor, error) {
			return createValidDoctor(t), nil
		}
		claimed := false
		slotRepo.SetBookedFunc = func(ctx context.Context, id uint, booked bool) error {
			if booked {
				if claimed {
					return domain.ErrSlotTaken
				}
				claimed = true
			}
			return nil
		}
		created := 0
		apptRepo.CreateFunc = func(ctx context.Context, appt *domain.Appointment) error {
			created++
			appt.ID = uint(created)
			return nil
		}

		svc := NewAppointmentService(apptRepo, slotRepo, doctorRepo, mocks.NewMockNotificationService())
		if _, err := svc.Book(context.Background(), validBookingInput()); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}
		if _, err := svc.Book(context.Background(), validBookingInput()); !errors.Is(err, domain.ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken for the loser, got %v", err)
		}
		if created != 1 {
			t.Errorf("expected exactly one appointment, got %d", created)
		}
	})

	t.Run("slot is released when the appointment cannot be written", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		slotRepo := mocks.NewMockSlotRepository()
		doctorRepo := mocks.NewMockDoctorRepository()

		slotRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
			return createOpenSlot(t), nil
		}
		doctorRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Doctor, error) {
			return createValidDoctor(t), nil
		}
		apptRepo.CreateFunc = func(ctx context.Context, appt *domain.Appointment) error {
			return errors.New("insert failed")
		}
		var calls []bool
		slotRepo.SetBookedFunc = func(ctx context.Context, id uint, booked bool) error {
			calls = append(calls, booked)
			return nil
		}

		svc := NewAppointmentService(apptRepo, slotRepo, doctorRepo, mocks.NewMockNotificationService())
		if _, err := svc.Book(context.Background(), validBookingInput()); err == nil {
			t.Fatal("expected the booking to fail")
		}
		if len(calls) != 2 || !calls[0] || calls[1] {
			t.Errorf("expected claim then release, got %v", calls)
		}
	})
}

func TestAppointmentServiceImpl_Cancel(t *testing.T) {
	bookedAppointment := func() *domain.Appointment {
		return &domain.Appointment{
			ID:           5,
			Reference:    "ref-123",
			DoctorID:     1,
			SlotID:       10,
			PatientName:  "Meera Shah",
			PatientEmail: "meera@example.com",
			Status:       domain.AppointmentBooked,
		}
	}

	t.Run("owner cancels and the slot reopens", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		slotRepo := mocks.NewMockSlotRepository()
		notificationSvc := mocks.NewMockNotificationService()

		apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
			return bookedAppointment(), nil
		}
		var newStatus string
		apptRepo.UpdateStatusFunc = func(ctx context.Context, id uint, status string) error {
			newStatus = status
			return nil
		}
		var freedSlotID uint
		var freedValue bool
		slotRepo.SetBookedFunc = func(ctx context.Context, id uint, booked bool) error {
			freedSlotID = id
			freedValue = booked
			return nil
		}

		svc := NewAppointmentService(apptRepo, slotRepo, mocks.NewMockDoctorRepository(), notificationSvc)
		appt, err := svc.Cancel(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appt.Status != domain.AppointmentCancelled {
			t.Errorf("expected cancelled status, got %q", appt.Status)
		}
		if newStatus != domain.AppointmentCancelled {
			t.Errorf("expected status update persisted, got %q", newStatus)
		}
		if freedSlotID != 10 || freedValue {
			t.Error("expected the slot to be freed")
		}

		deadline := time.Now().Add(time.Second)
		for notificationSvc.EmailCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		if notificationSvc.EmailCount() == 0 {
			t.Error("expected a cancellation email to the patient")
		}
	})

	t.Run("cancelling twice is idempotent", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
			appt := bookedAppointment()
			appt.Status = domain.AppointmentCancelled
			return appt, nil
		}
		statusUpdated := false
		apptRepo.UpdateStatusFunc = func(ctx context.Context, id uint, status string) error {
			statusUpdated = true
			return nil
		}

		svc := NewAppointmentService(apptRepo, mocks.NewMockSlotRepository(), mocks.NewMockDoctorRepository(), mocks.NewMockNotificationService())
		appt, err := svc.Cancel(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appt.Status != domain.AppointmentCancelled {
			t.Errorf("expected cancelled status, got %q", appt.Status)
		}
		if statusUpdated {
			t.Error("an already-cancelled appointment must not be written again")
		}
	})

	t.Run("another doctor's appointment", func(t *testing.T) {
		apptRepo := mocks.NewMockAppointmentRepository()
		apptRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Appointment, error) {
			return bookedAppointment(), nil
		}

		svc := NewAppointmentService(apptRepo, mocks.NewMockSlotRepository(), mocks.NewMockDoctorRepository(), mocks.NewMockNotificationService())
		_, err := svc.Cancel(context.Background(), 2, 5)
		if !errors.Is(err, domain.ErrAppointmentNotOwned) {
			t.Errorf("expected ErrAppointmentNotOwned, got %v", err)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		svc := NewAppointmentService(mocks.NewMockAppointmentRepository(), mocks.NewMockSlotRepository(), mocks.NewMockDoctorRepository(), mocks.NewMockNotificationService())
		_, err := svc.Cancel(context.Background(), 1, 99)
		if !errors.Is(err, domain.ErrAppointmentNotFound) {
			t.Errorf("expected ErrAppointmentNotFound, got %v", err)
		}
	})
}
