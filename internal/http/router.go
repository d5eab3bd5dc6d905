package httpx

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/internal/http/handlers"
	"github.com/you/medbooksvc/internal/http/middleware"
)

// RouterDeps bundles everything BuildRouter wires together
type RouterDeps struct {
	Auth         *handlers.AuthHandlers
	Doctors      *handlers.DoctorHandlers
	Schedule     *handlers.ScheduleHandlers
	Appointments *handlers.AppointmentHandlers
	Health       *handlers.HealthHandlers
	AuthMW       *middleware.AuthMW
	AuthLimit    gin.HandlerFunc
	APILimit     gin.HandlerFunc
	Origins      []string
}

func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = deps.Origins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	r.GET("/health", deps.Health.Health)

	api := r.Group("/api")

	// Authentication endpoints carry the stricter limit
	auth := api.Group("/auth").Use(deps.AuthLimit)
	auth.POST("/register", deps.Auth.Register)
	auth.POST("/verify", deps.Auth.VerifyAccount)
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/forgot-password", deps.Auth.ForgotPassword)
	auth.POST("/reset-password", deps.Auth.ResetPassword)

	account := api.Group("/auth").Use(deps.APILimit, deps.AuthMW.RequireAuth())
	account.GET("/profile", deps.Auth.Profile)
	account.PUT("/profile", deps.Auth.UpdateProfile)
	account.PUT("/change-password", deps.Auth.ChangePassword)

	public := api.Group("/").Use(deps.APILimit, deps.AuthMW.OptionalAuth())
	public.GET("/doctors", deps.Doctors.List)
	public.GET("/doctors/:id/slots", deps.Doctors.Slots)
	public.POST("/appointments", deps.Appointments.Book)

	private := api.Group("/").Use(deps.APILimit, deps.AuthMW.RequireAuth())
	private.GET("/appointments", deps.Appointments.List)
	private.PUT("/appointments/:id/cancel", deps.Appointments.Cancel)
	private.POST("/slots", deps.Schedule.CreateSlot)
	private.GET("/slots", deps.Schedule.ListSlots)
	private.DELETE("/slots/:id", deps.Schedule.DeleteSlot)

	return r
}
