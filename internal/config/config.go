package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string // reference zone schedules are authored in
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AttendanceConfig holds the policy knobs the eligibility and aggregation
// engines depend on. The week boundary is a calendar week starting on
// WeekStartDay, not a rolling seven days.
type AttendanceConfig struct {
	WeekStartDay        int           // 0 = Sunday .. 6 = Saturday
	OvertimeWeeklyLimit float64       // hours per calendar week
	OnTimeGraceMinutes  int           // clock-in slack counted as on time
	StatsQueryTimeout   time.Duration // per-request aggregation deadline
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil || dbMaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be a positive integer")
	}

	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil || dbMinConns < 0 || dbMinConns > dbMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS must be 0..DB_MAX_CONNS")
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftwise_timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration (optional: email notices are skipped when unset)
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@shiftwise.app"),
		FromName: getEnv("SMTP_FROM_NAME", "Shiftwise"),
	}

	// Attendance policy configuration
	weekStart, err := strconv.Atoi(getEnv("ATTENDANCE_WEEK_START", "0"))
	if err != nil || weekStart < 0 || weekStart > 6 {
		return nil, fmt.Errorf("ATTENDANCE_WEEK_START must be 0..6")
	}

	overtimeLimit, err := strconv.ParseFloat(getEnv("ATTENDANCE_OVERTIME_WEEKLY_LIMIT", "40"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_OVERTIME_WEEKLY_LIMIT: %w", err)
	}

	onTimeGrace, err := strconv.Atoi(getEnv("ATTENDANCE_ON_TIME_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_ON_TIME_GRACE_MINUTES: %w", err)
	}

	statsTimeout, err := time.ParseDuration(getEnv("STATS_QUERY_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_QUERY_TIMEOUT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WeekStartDay:        weekStart,
		OvertimeWeeklyLimit: overtimeLimit,
		OnTimeGraceMinutes:  onTimeGrace,
		StatsQueryTimeout:   statsTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves the configured reference timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
