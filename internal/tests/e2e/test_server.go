package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	httpx "github.com/you/medbooksvc/internal/http"
	"github.com/you/medbooksvc/internal/http/handlers"
	"github.com/you/medbooksvc/internal/http/middleware"
	"github.com/you/medbooksvc/internal/infrastructure/auth"
	"github.com/you/medbooksvc/internal/infrastructure/repositories"
	"github.com/you/medbooksvc/internal/mocks"
	"github.com/you/medbooksvc/internal/services"
)

// TestServer runs the full HTTP stack against in-memory SQLite, with real
// bcrypt and JWT but recorded notifications and no throttling.
type TestServer struct {
	Server        *httptest.Server
	DB            *gorm.DB
	Notifications *mocks.MockNotificationService
	Client        *http.Client
}

// NewTestServer wires the complete router for a test
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&repositories.DBDoctor{},
		&repositories.DBSlot{},
		&repositories.DBAppointment{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	doctorRepo := repositories.NewDoctorRepository(db)
	slotRepo := repositories.NewSlotRepository(db)
	apptRepo := repositories.NewAppointmentRepository(db)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "medbooksvc", time.Hour)
	notificationSvc := mocks.NewMockNotificationService()

	authSvc := services.NewAuthService(doctorRepo, passwordSvc, tokenSvc, notificationSvc)
	resetSvc := services.NewPasswordResetService(doctorRepo, passwordSvc, notificationSvc, 30*time.Minute)
	scheduleSvc := services.NewScheduleService(slotRepo)
	apptSvc := services.NewAppointmentService(apptRepo, slotRepo, doctorRepo, notificationSvc)

	noLimit := middleware.RateLimit(mocks.NewMockRateLimiter())

	router := httpx.BuildRouter(httpx.RouterDeps{
		Auth:         handlers.NewAuthHandlers(authSvc, resetSvc),
		Doctors:      handlers.NewDoctorHandlers(doctorRepo, scheduleSvc),
		Schedule:     handlers.NewScheduleHandlers(scheduleSvc),
		Appointments: handlers.NewAppointmentHandlers(apptSvc),
		Health:       handlers.NewHealthHandlers(db),
		AuthMW:       middleware.NewAuthMW(tokenSvc, doctorRepo),
		AuthLimit:    noLimit,
		APILimit:     noLimit,
		Origins:      []string{"http://localhost:3000"},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:        server,
		DB:            db,
		Notifications: notificationSvc,
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// DoJSON sends one JSON request, with a bearer token when given, and decodes
// the envelope.
func (ts *TestServer) DoJSON(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var envelope map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, envelope
}

// WaitForEmails blocks until at least n emails were recorded or the timeout
// passes; confirmation mail goes out on goroutines.
func (ts *TestServer) WaitForEmails(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for ts.Notifications.EmailCount() < n {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return true
}
