package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/http/middleware"
)

// ScheduleHandlers handles a doctor's availability slot management
type ScheduleHandlers struct {
	scheduleSvc domain.ScheduleService
}

// NewScheduleHandlers creates new schedule handlers
func NewScheduleHandlers(scheduleSvc domain.ScheduleService) *ScheduleHandlers {
	return &ScheduleHandlers{scheduleSvc: scheduleSvc}
}

// CreateSlotRequest represents a new availability slot
type CreateSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// CreateSlot publishes a new availability slot for the authenticated doctor
func (h *ScheduleHandlers) CreateSlot(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	slot, err := h.scheduleSvc.AddSlot(c.Request.Context(), doctor.ID, date, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create slot")
		return
	}

	respondOK(c, http.StatusCreated, "Slot created", gin.H{"slot": slot})
}

// ListSlots returns all slots of the authenticated doctor
func (h *ScheduleHandlers) ListSlots(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	slots, err := h.scheduleSvc.ListSlots(c.Request.Context(), doctor.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list slots")
		return
	}

	respondOK(c, http.StatusOK, "Slots retrieved", gin.H{"slots": slots})
}

// DeleteSlot removes an unbooked slot owned by the authenticated doctor
func (h *ScheduleHandlers) DeleteSlot(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	slotID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid slot id")
		return
	}

	err = h.scheduleSvc.RemoveSlot(c.Request.Context(), doctor.ID, uint(slotID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			respondError(c, http.StatusNotFound, "Slot not found")
		case errors.Is(err, domain.ErrSlotNotOwned):
			respondError(c, http.StatusNotFound, "Slot not found")
		case errors.Is(err, domain.ErrSlotTaken):
			respondError(c, http.StatusBadRequest, "Slot has an active booking")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to delete slot")
		}
		return
	}

	respondOK(c, http.StatusOK, "Slot deleted", nil)
}
