package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/http/middleware"
)

// DoctorHandlers serves the public doctor directory used by the booking flow
type DoctorHandlers struct {
	doctorRepo  domain.DoctorRepository
	scheduleSvc domain.ScheduleService
}

// NewDoctorHandlers creates new doctor directory handlers
func NewDoctorHandlers(doctorRepo domain.DoctorRepository, scheduleSvc domain.ScheduleService) *DoctorHandlers {
	return &DoctorHandlers{
		doctorRepo:  doctorRepo,
		scheduleSvc: scheduleSvc,
	}
}

// List returns all verified, active doctors
func (h *DoctorHandlers) List(c *gin.Context) {
	doctors, err := h.doctorRepo.ListVerified(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list doctors")
		return
	}

	views := make([]*domain.DoctorView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, d.View())
	}

	respondOK(c, http.StatusOK, "Doctors retrieved", gin.H{"doctors": views})
}

// Slots returns a doctor's bookable slots. Anonymous callers see open
// future slots only; a doctor viewing their own schedule sees everything,
// which is why this route uses the optional auth variant.
func (h *DoctorHandlers) Slots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid doctor id")
		return
	}

	if viewer, ok := middleware.DoctorFromContext(c); ok && viewer.ID == uint(doctorID) {
		slots, err := h.scheduleSvc.ListSlots(c.Request.Context(), viewer.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to list slots")
			return
		}
		respondOK(c, http.StatusOK, "Slots retrieved", gin.H{"slots": slots})
		return
	}

	slots, err := h.scheduleSvc.OpenSlots(c.Request.Context(), uint(doctorID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list slots")
		return
	}

	respondOK(c, http.StatusOK, "Slots retrieved", gin.H{"slots": slots})
}
