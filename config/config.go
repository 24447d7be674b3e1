package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AWS       AWSConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AWSConfig holds AWS credentials and the report-export bucket.
type AWSConfig struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	ExportsBucket        string
	PresignExpireMinutes int
}

// AnalyticsConfig holds the tunable thresholds of the analytics engine. The
// defaults reproduce the documented formulas; they are surfaced here so the
// numbers are auditable rather than buried in the computation.
type AnalyticsConfig struct {
	// MemberOverloadThreshold is the non-completed task count above which an
	// assignee is flagged as a bottleneck.
	MemberOverloadThreshold int
	// MemberOverloadHighThreshold is the count above which that bottleneck is
	// HIGH severity instead of MEDIUM.
	MemberOverloadHighThreshold int
	// RecommendedTaskCapacity is the task count treated as 100% workload.
	RecommendedTaskCapacity int
	// WorkloadDisplayCap caps the reported workload percentage for outliers.
	WorkloadDisplayCap float64
	// CriticalDeadlineWindow is the forward window for critical deadlines.
	CriticalDeadlineWindow time.Duration
	// ActivityWindow is the lookback window for "active member" detection.
	ActivityWindow time.Duration
	// Health score penalty weights.
	HealthWeightOverdue    float64
	HealthWeightBlocked    float64
	HealthWeightUnassigned float64
	HealthWeightCritical   float64
	// HealthPenaltyPerBottleneck is subtracted once per detected bottleneck.
	HealthPenaltyPerBottleneck float64
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "eventlens"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:               getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
			ExportsBucket:        getEnv("AWS_S3_EXPORTS_BUCKET", "eventlens-report-exports"),
			PresignExpireMinutes: getEnvInt("AWS_PRESIGN_EXPIRE_MINUTES", 15),
		},
		Analytics: AnalyticsConfig{
			MemberOverloadThreshold:     getEnvInt("ANALYTICS_OVERLOAD_TASKS", 8),
			MemberOverloadHighThreshold: getEnvInt("ANALYTICS_OVERLOAD_HIGH_TASKS", 12),
			RecommendedTaskCapacity:     getEnvInt("ANALYTICS_TASK_CAPACITY", 10),
			WorkloadDisplayCap:          getEnvFloat("ANALYTICS_WORKLOAD_DISPLAY_CAP", 200),
			CriticalDeadlineWindow:      time.Duration(getEnvInt("ANALYTICS_CRITICAL_WINDOW_HOURS", 24)) * time.Hour,
			ActivityWindow:              time.Duration(getEnvInt("ANALYTICS_ACTIVITY_WINDOW_DAYS", 7)) * 24 * time.Hour,
			HealthWeightOverdue:         getEnvFloat("ANALYTICS_HEALTH_WEIGHT_OVERDUE", 30),
			HealthWeightBlocked:         getEnvFloat("ANALYTICS_HEALTH_WEIGHT_BLOCKED", 25),
			HealthWeightUnassigned:      getEnvFloat("ANALYTICS_HEALTH_WEIGHT_UNASSIGNED", 20),
			HealthWeightCritical:        getEnvFloat("ANALYTICS_HEALTH_WEIGHT_CRITICAL", 15),
			HealthPenaltyPerBottleneck:  getEnvFloat("ANALYTICS_HEALTH_BOTTLENECK_PENALTY", 5),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}
