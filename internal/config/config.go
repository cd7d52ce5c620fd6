package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Development-only fallbacks. LoadConfig refuses them in production.
const (
	devAdminPassword = "admin123"
	devSessionSecret = "dev-session-secret-change-me-0000"
)

var (
	ErrMissingMongoURI    = errors.New("environment variable MONGODB_URI is required")
	ErrMissingAdminSecret = errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required in production")
	ErrMissingSession     = errors.New("SESSION_SECRET is required in production")
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	Notify    NotifyConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Production reports whether the service runs with production safeguards.
func (s ServerConfig) Production() bool {
	return strings.EqualFold(s.Environment, "production")
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type AdminConfig struct {
	Password     string
	PasswordHash string
	LoginDelay   time.Duration
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           []string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "site")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("ADMIN_LOGIN_DELAY_MS", 500)
	viper.SetDefault("SESSION_TTL_HOURS", 168)
	viper.SetDefault("SESSION_COOKIE_NAME", "site_session")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 1)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("MINIO_BUCKET", "site-media")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      strings.TrimSpace(os.Getenv("MONGODB_URI")),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Admin: AdminConfig{
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			LoginDelay:   time.Duration(viper.GetInt("ADMIN_LOGIN_DELAY_MS")) * time.Millisecond,
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		Notify: NotifyConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         viper.GetString("NOTIFY_FROM"),
			To:           splitCSV(viper.GetString("NOTIFY_TO")),
		},
	}

	if cfg.MongoDB.URI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.Admin.LoginDelay < 0 {
		cfg.Admin.LoginDelay = 0
	}

	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		if cfg.Server.Production() {
			return nil, ErrMissingAdminSecret
		}
		cfg.Admin.Password = devAdminPassword
	}
	if cfg.Session.Secret == "" {
		if cfg.Server.Production() {
			return nil, ErrMissingSession
		}
		cfg.Session.Secret = devSessionSecret
	}
	if cfg.MongoDB.Timeout <= 0 {
		return nil, fmt.Errorf("MONGODB_TIMEOUT must be positive, got %s", cfg.MongoDB.Timeout)
	}

	return cfg, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
