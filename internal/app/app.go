package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/internal/config"
	httpx "github.com/you/medbooksvc/internal/http"
	"github.com/you/medbooksvc/internal/http/handlers"
	"github.com/you/medbooksvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, rate limiting degraded: %v", err)
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.ResetSvc)
	doctorH := handlers.NewDoctorHandlers(container.DoctorRepo, container.ScheduleSvc)
	scheduleH := handlers.NewScheduleHandlers(container.ScheduleSvc)
	apptH := handlers.NewAppointmentHandlers(container.ApptSvc)
	healthH := handlers.NewHealthHandlers(container.DB)

	authMW := middleware.NewAuthMW(container.TokenSvc, container.DoctorRepo)

	r := httpx.BuildRouter(httpx.RouterDeps{
		Auth:         authH,
		Doctors:      doctorH,
		Schedule:     scheduleH,
		Appointments: apptH,
		Health:       healthH,
		AuthMW:       authMW,
		AuthLimit:    middleware.RateLimit(container.AuthLimiter),
		APILimit:     middleware.RateLimit(container.APILimiter),
		Origins:      cfg.AllowedOrigins,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
