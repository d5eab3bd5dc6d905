package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/config"
	"github.com/you/medbooksvc/internal/infrastructure/auth"
	"github.com/you/medbooksvc/internal/infrastructure/database"
	"github.com/you/medbooksvc/internal/infrastructure/notifications"
	"github.com/you/medbooksvc/internal/infrastructure/ratelimit"
	"github.com/you/medbooksvc/internal/infrastructure/repositories"
	"github.com/you/medbooksvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	DoctorRepo domain.DoctorRepository
	SlotRepo   domain.SlotRepository
	ApptRepo   domain.AppointmentRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
	ResetSvc        domain.PasswordResetService
	ScheduleSvc     domain.ScheduleService
	ApptSvc         domain.AppointmentService

	// Rate limiters
	AuthLimiter domain.RateLimiter
	APILimiter  domain.RateLimiter
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.DoctorRepo = repositories.NewDoctorRepository(c.DB)
	c.SlotRepo = repositories.NewSlotRepository(c.DB)
	c.ApptRepo = repositories.NewAppointmentRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)
	c.NotificationSvc = notifications.NewNotificationService(
		notifications.SMTPSettings{
			Host:     c.Config.SMTPHost,
			Port:     c.Config.SMTPPort,
			Username: c.Config.SMTPUsername,
			Password: c.Config.SMTPPassword,
			From:     c.Config.EmailFrom,
		},
		notifications.TwilioSettings{
			AccountSID: c.Config.TwilioSID,
			AuthToken:  c.Config.TwilioToken,
			FromNumber: c.Config.TwilioFrom,
		},
	)

	c.AuthSvc = services.NewAuthService(c.DoctorRepo, c.PasswordSvc, c.TokenSvc, c.NotificationSvc)
	c.ResetSvc = services.NewPasswordResetService(c.DoctorRepo, c.PasswordSvc, c.NotificationSvc, c.Config.ResetTokenTTL)
	c.ScheduleSvc = services.NewScheduleService(c.SlotRepo)
	c.ApptSvc = services.NewAppointmentService(c.ApptRepo, c.SlotRepo, c.DoctorRepo, c.NotificationSvc)

	c.AuthLimiter = ratelimit.NewRedisLimiter(c.RedisClient, "auth", c.Config.AuthRateLimit, c.Config.AuthRateWindow)
	c.APILimiter = ratelimit.NewRedisLimiter(c.RedisClient, "api", c.Config.APIRateLimit, c.Config.APIRateWindow)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
