package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandlers reports service liveness and database reachability
type HealthHandlers struct {
	db        *gorm.DB
	startedAt time.Time
}

// NewHealthHandlers creates new health handlers
func NewHealthHandlers(db *gorm.DB) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		startedAt: time.Now(),
	}
}

// Health returns 200 with uptime while the database answers pings, 503 otherwise
func (h *HealthHandlers) Health(c *gin.Context) {
	uptime := time.Since(h.startedAt).Round(time.Second).String()

	status := "ok"
	dbStatus := "up"
	code := http.StatusOK
	if err := h.ping(c); err != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"db":     dbStatus,
		"uptime": uptime,
	})
}

func (h *HealthHandlers) ping(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
