package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/you/medbooksvc/domain"
)

// AppointmentServiceImpl implements domain.AppointmentService
type AppointmentServiceImpl struct {
	apptRepo        domain.AppointmentRepository
	slotRepo        domain.SlotRepository
	doctorRepo      domain.DoctorRepository
	notificationSvc domain.NotificationService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo domain.AppointmentRepository,
	slotRepo domain.SlotRepository,
	doctorRepo domain.DoctorRepository,
	notificationSvc domain.NotificationService,
) domain.AppointmentService {
	return &AppointmentServiceImpl{
		apptRepo:        apptRepo,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		notificationSvc: notificationSvc,
	}
}

// Book implements domain.AppointmentService
func (s *AppointmentServiceImpl) Book(ctx context.Context, input domain.BookingInput) (*domain.Appointment, error) {
	slot, err := s.slotRepo.FindByID(ctx, input.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.Booked {
		return nil, domain.ErrSlotTaken
	}

	doctor, err := s.doctorRepo.FindByID(ctx, slot.DoctorID)
	if err != nil {
		return nil, err
	}

	// Claim the slot before creating the appointment. The claim is
	// atomic at the repository, so of two concurrent bookings only one
	// gets past this point.
	if err := s.slotRepo.SetBooked(ctx, slot.ID, true); err != nil {
		if err == domain.ErrSlotTaken {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to mark slot booked: %w", err)
	}

	appt := &domain.Appointment{
		Reference:    uuid.NewString(),
		DoctorID:     slot.DoctorID,
		SlotID:       slot.ID,
		PatientName:  input.PatientName,
		PatientEmail: input.PatientEmail,
		PatientPhone: input.PatientPhone,
		HealthIssue:  input.HealthIssue,
		Status:       domain.AppointmentBooked,
	}

	if err := s.apptRepo.Create(ctx, appt); err != nil {
		if relErr := s.slotRepo.SetBooked(ctx, slot.ID, false); relErr != nil {
			log.Printf("SLOT_RELEASE_FAILED: slot_id=%d error=%v", slot.ID, relErr)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// Confirmation is best-effort; the booking stands even if neither
	// message goes out
	go s.sendConfirmation(appt, doctor, slot)

	log.Printf("APPOINTMENT_BOOKED: appointment_id=%d doctor_id=%d slot_id=%d reference=%s",
		appt.ID, appt.DoctorID, appt.SlotID, appt.Reference)

	return appt, nil
}

// ListForDoctor implements domain.AppointmentService
func (s *AppointmentServiceImpl) ListForDoctor(ctx context.Context, doctorID uint) ([]*domain.Appointment, error) {
	return s.apptRepo.ListByDoctor(ctx, doctorID)
}

// Cancel implements domain.AppointmentService. Cancelling frees the slot
// for rebooking.
func (s *AppointmentServiceImpl) Cancel(ctx context.Context, doctorID, appointmentID uint) (*domain.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, domain.ErrAppointmentNotOwned
	}
	if appt.Status == domain.AppointmentCancelled {
		return appt, nil
	}

	if err := s.apptRepo.UpdateStatus(ctx, appt.ID, domain.AppointmentCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	appt.Status = domain.AppointmentCancelled

	if err := s.slotRepo.SetBooked(ctx, appt.SlotID, false); err != nil {
		return nil, fmt.Errorf("failed to free slot: %w", err)
	}

	go func(appt *domain.Appointment) {
		body := fmt.Sprintf("Your appointment %s has been cancelled by the doctor.", appt.Reference)
		if err := s.notificationSvc.SendEmail(appt.PatientEmail, "Appointment cancelled", body); err != nil {
			log.Printf("CANCEL_EMAIL_FAILED: appointment_id=%d error=%v", appt.ID, err)
		}
	}(appt)

	log.Printf("APPOINTMENT_CANCELLED: appointment_id=%d doctor_id=%d", appt.ID, doctorID)
	return appt, nil
}

func (s *AppointmentServiceImpl) sendConfirmation(appt *domain.Appointment, doctor *domain.Doctor, slot *domain.AvailabilitySlot) {
	when := fmt.Sprintf("%s %s-%s", slot.Date.Format("2006-01-02"), slot.StartTime, slot.EndTime)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment with Dr. %s %s is confirmed for %s.\nBooking reference: %s",
		appt.PatientName, doctor.FirstName, doctor.LastName, when, appt.Reference,
	)
	if err := s.notificationSvc.SendEmail(appt.PatientEmail, "Appointment confirmed", body); err != nil {
		log.Printf("CONFIRM_EMAIL_FAILED: appointment_id=%d error=%v", appt.ID, err)
	}

	if appt.PatientPhone != "" {
		message := fmt.Sprintf("Appointment confirmed with Dr. %s on %s. Ref: %s", doctor.LastName, when, appt.Reference)
		if err := s.notificationSvc.SendSMS(appt.PatientPhone, message); err != nil {
			log.Printf("CONFIRM_SMS_FAILED: appointment_id=%d error=%v", appt.ID, err)
		}
	}
}
