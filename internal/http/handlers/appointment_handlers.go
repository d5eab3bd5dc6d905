package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/http/middleware"
)

// AppointmentHandlers handles the patient booking flow and the doctor's
// appointment (patient) list
type AppointmentHandlers struct {
	apptSvc domain.AppointmentService
}

// NewAppointmentHandlers creates new appointment handlers
func NewAppointmentHandlers(apptSvc domain.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{apptSvc: apptSvc}
}

// BookRequest represents a patient booking request
type BookRequest struct {
	SlotID       uint   `json:"slot_id" binding:"required"`
	PatientName  string `json:"patient_name" binding:"required,max=200"`
	PatientEmail string `json:"patient_email" binding:"required,email"`
	PatientPhone string `json:"patient_phone" binding:"omitempty,max=32"`
	HealthIssue  string `json:"health_issue" binding:"omitempty,max=1000"`
}

// Book books an appointment against an open slot. The route is public;
// patients do not hold accounts.
func (h *AppointmentHandlers) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	appt, err := h.apptSvc.Book(c.Request.Context(), domain.BookingInput{
		SlotID:       req.SlotID,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		HealthIssue:  req.HealthIssue,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			respondError(c, http.StatusNotFound, "Slot not found")
		case errors.Is(err, domain.ErrSlotTaken):
			respondError(c, http.StatusBadRequest, "Slot is no longer available")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to book appointment")
		}
		return
	}

	respondOK(c, http.StatusCreated, "Appointment booked", gin.H{"appointment": appt})
}

// List returns the authenticated doctor's appointments
func (h *AppointmentHandlers) List(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	appts, err := h.apptSvc.ListForDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list appointments")
		return
	}

	respondOK(c, http.StatusOK, "Appointments retrieved", gin.H{"appointments": appts})
}

// Cancel cancels one of the authenticated doctor's appointments
func (h *AppointmentHandlers) Cancel(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	apptID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	appt, err := h.apptSvc.Cancel(c.Request.Context(), doctor.ID, uint(apptID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound), errors.Is(err, domain.ErrAppointmentNotOwned):
			respondError(c, http.StatusNotFound, "Appointment not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		}
		return
	}

	respondOK(c, http.StatusOK, "Appointment cancelled", gin.H{"appointment": appt})
}
