package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/mocks"
)

func TestScheduleHandlers_CreateSlot(t *testing.T) {
	tests := []struct {
		name            string
		requestBody     interface{}
		setupMocks      func(*mocks.MockScheduleService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:        "successful creation",
			requestBody: CreateSlotRequest{Date: "2026-05-10", StartTime: "09:00", EndTime: "09:30"},
			setupMocks: func(scheduleSvc *mocks.MockScheduleService) {
				scheduleSvc.AddSlotFunc = func(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*domain.AvailabilitySlot, error) {
					return &domain.AvailabilitySlot{ID: 7, DoctorID: doctorID, Date: date, StartTime: startTime, EndTime: endTime}, nil
				}
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Slot created",
		},
		{
			name:            "bad date format",
			requestBody:     CreateSlotRequest{Date: "10/05/2026", StartTime: "09:00", EndTime: "09:30"},
			setupMocks:      func(*mocks.MockScheduleService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "date must be in YYYY-MM-DD format",
		},
		{
			name:           "missing fields",
			requestBody:    gin.H{"date": "2026-05-10"},
			setupMocks:     func(*mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduleSvc := mocks.NewMockScheduleService()
			tt.setupMocks(scheduleSvc)
			h := NewScheduleHandlers(scheduleSvc)

			w := performJSON(t, http.MethodPost, "/api/slots", tt.requestBody, testDoctor(), func(r *gin.Engine) {
				r.POST("/api/slots", h.CreateSlot)
			})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if tt.expectedMessage != "" && resp.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
		})
	}
}

func TestScheduleHandlers_DeleteSlot(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		setupMocks      func(*mocks.MockScheduleService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "successful deletion",
			path:            "/api/slots/7",
			setupMocks:      func(*mocks.MockScheduleService) {},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Slot deleted",
		},
		{
			name: "not found",
			path: "/api/slots/99",
			setupMocks: func(scheduleSvc *mocks.MockScheduleService) {
				scheduleSvc.RemoveSlotFunc = func(ctx context.Context, doctorID, slotID uint) error {
					return domain.ErrSlotNotFound
				}
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Slot not found",
		},
		{
			name: "another doctor's slot looks like not found",
			path: "/api/slots/7",
			setupMocks: func(scheduleSvc *mocks.MockScheduleService) {
				scheduleSvc.RemoveSlotFunc = func(ctx context.Context, doctorID, slotID uint) error {
					return domain.ErrSlotNotOwned
				}
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Slot not found",
		},
		{
			name: "booked slot",
			path: "/api/slots/7",
			setupMocks: func(scheduleSvc *mocks.MockScheduleService) {
				scheduleSvc.RemoveSlotFunc = func(ctx context.Context, doctorID, slotID uint) error {
					return domain.ErrSlotTaken
				}
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Slot has an active booking",
		},
		{
			name:           "non-numeric id",
			path:           "/api/slots/abc",
			setupMocks:     func(*mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduleSvc := mocks.NewMockScheduleService()
			tt.setupMocks(scheduleSvc)
			h := NewScheduleHandlers(scheduleSvc)

			w := performJSON(t, http.MethodDelete, tt.path, nil, testDoctor(), func(r *gin.Engine) {
				r.DELETE("/api/slots/:id", h.DeleteSlot)
			})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if tt.expectedMessage != "" && resp.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
		})
	}
}

func TestDoctorHandlers_Slots(t *testing.T) {
	allSlots := []*domain.AvailabilitySlot{
		{ID: 1, DoctorID: 1, StartTime: "09:00", EndTime: "09:30", Booked: true},
		{ID: 2, DoctorID: 1, StartTime: "10:00", EndTime: "10:30"},
	}
	openSlots := allSlots[1:]

	newHandlers := func() *DoctorHandlers {
		scheduleSvc := mocks.NewMockScheduleService()
		scheduleSvc.ListSlotsFunc = func(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
			return allSlots, nil
		}
		scheduleSvc.OpenSlotsFunc = func(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
			return openSlots, nil
		}
		return NewDoctorHandlers(mocks.NewMockDoctorRepository(), scheduleSvc)
	}

	slotCount := func(t *testing.T, resp Response) int {
		t.Helper()
		data, _ := resp.Data.(map[string]interface{})
		slots, _ := data["slots"].([]interface{})
		return len(slots)
	}

	t.Run("anonymous callers see open slots only", func(t *testing.T) {
		h := newHandlers()
		w := performJSON(t, http.MethodGet, "/api/doctors/1/slots", nil, nil, func(r *gin.Engine) {
			r.GET("/api/doctors/:id/slots", h.Slots)
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := slotCount(t, decodeEnvelope(t, w)); got != 1 {
			t.Errorf("expected 1 open slot, got %d", got)
		}
	})

	t.Run("the owner sees the full schedule", func(t *testing.T) {
		h := newHandlers()
		w := performJSON(t, http.MethodGet, "/api/doctors/1/slots", nil, testDoctor(), func(r *gin.Engine) {
			r.GET("/api/doctors/:id/slots", h.Slots)
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := slotCount(t, decodeEnvelope(t, w)); got != 2 {
			t.Errorf("expected 2 slots for the owner, got %d", got)
		}
	})

	t.Run("another authenticated doctor sees open slots only", func(t *testing.T) {
		h := newHandlers()
		other := testDoctor()
		other.ID = 2
		w := performJSON(t, http.MethodGet, "/api/doctors/1/slots", nil, other, func(r *gin.Engine) {
			r.GET("/api/doctors/:id/slots", h.Slots)
		})
		if got := slotCount(t, decodeEnvelope(t, w)); got != 1 {
			t.Errorf("expected 1 open slot for a non-owner, got %d", got)
		}
	})
}

func TestDoctorHandlers_List(t *testing.T) {
	doctorRepo := mocks.NewMockDoctorRepository()
	doctorRepo.ListVerifiedFunc = func(ctx context.Context) ([]*domain.Doctor, error) {
		return []*domain.Doctor{testDoctor()}, nil
	}
	h := NewDoctorHandlers(doctorRepo, mocks.NewMockScheduleService())

	w := performJSON(t, http.MethodGet, "/api/doctors", nil, nil, func(r *gin.Engine) {
		r.GET("/api/doctors", h.List)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeEnvelope(t, w)
	data, _ := resp.Data.(map[string]interface{})
	doctors, _ := data["doctors"].([]interface{})
	if len(doctors) != 1 {
		t.Fatalf("expected one doctor, got %d", len(doctors))
	}
	entry, _ := doctors[0].(map[string]interface{})
	if _, leaked := entry["password"]; leaked {
		t.Error("directory must not carry password hashes")
	}
}
