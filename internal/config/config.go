package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ResetConfig struct {
	TokenTTL string `yaml:"token_ttl"`
}

type RateLimitConfig struct {
	AuthLimit  int    `yaml:"auth_limit"`
	AuthWindow string `yaml:"auth_window"`
	APILimit   int    `yaml:"api_limit"`
	APIWindow  string `yaml:"api_window"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Reset     ResetConfig     `yaml:"reset"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type Config struct {
	Port           string
	GinMode        string
	DSN            string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	EmailFrom      string
	TwilioSID      string
	TwilioToken    string
	TwilioFrom     string
	ResetTokenTTL  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	APIRateLimit   int
	APIRateWindow  time.Duration
	AllowedOrigins []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads config/config.yml when present and overlays environment
// variables on top, so deployments can run from the environment alone.
func Load() (*Config, error) {
	configFile, err := loadConfigFile("config/config.yml")
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		configFile = defaultConfigFile()
	}

	tokenTTL, err := time.ParseDuration(env("JWT_TTL", configFile.JWT.TTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(env("RESET_TOKEN_TTL", configFile.Reset.TokenTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	authWindow, err := time.ParseDuration(env("AUTH_RATE_WINDOW", configFile.RateLimit.AuthWindow))
	if err != nil {
		return nil, fmt.Errorf("invalid auth rate window: %w", err)
	}

	apiWindow, err := time.ParseDuration(env("API_RATE_WINDOW", configFile.RateLimit.APIWindow))
	if err != nil {
		return nil, fmt.Errorf("invalid api rate window: %w", err)
	}

	origins := configFile.CORS.AllowedOrigins
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return &Config{
		Port:           env("PORT", strconv.Itoa(configFile.App.Port)),
		GinMode:        env("GIN_MODE", configFile.App.GinMode),
		DSN:            env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:      env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:  env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:        envInt("REDIS_DB", configFile.Redis.DB),
		JWTSecret:      env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:      env("JWT_ISSUER", configFile.JWT.Issuer),
		TokenTTL:       tokenTTL,
		SMTPHost:       env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:       envInt("SMTP_PORT", configFile.SMTP.Port),
		SMTPUsername:   env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:   env("SMTP_PASSWORD", configFile.SMTP.Password),
		EmailFrom:      env("EMAIL_FROM", configFile.SMTP.From),
		TwilioSID:      env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:    env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:     env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		ResetTokenTTL:  resetTTL,
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", configFile.RateLimit.AuthLimit),
		AuthRateWindow: authWindow,
		APIRateLimit:   envInt("API_RATE_LIMIT", configFile.RateLimit.APILimit),
		APIRateWindow:  apiWindow,
		AllowedOrigins: origins,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defaultConfigFile() *ConfigFile {
	return &ConfigFile{
		App:      AppConfig{Port: 8080, GinMode: "release"},
		Database: DatabaseConfig{DSN: "host=localhost user=postgres dbname=medbook port=5432 sslmode=disable"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		JWT:      JWTConfig{Issuer: "medbooksvc", TTL: "168h"},
		SMTP:     SMTPConfig{Port: 587},
		Reset:    ResetConfig{TokenTTL: "30m"},
		RateLimit: RateLimitConfig{
			AuthLimit:  10,
			AuthWindow: "15m",
			APILimit:   300,
			APIWindow:  "15m",
		},
	}
}
