package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Database struct {
		Driver        string        `yaml:"driver"` // postgres, sqlite
		DSN           string        `yaml:"url"`
		MaxOpenConns  int           `yaml:"max_open_conns"`
		MaxIdleConns  int           `yaml:"max_idle_conns"`
		SlowThreshold time.Duration `yaml:"slow_threshold"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Session struct {
		Secret     string        `yaml:"secret"`
		CookieName string        `yaml:"cookie_name"`
		TTL        time.Duration `yaml:"ttl"`
		Secure     bool          `yaml:"secure"`
		Domain     string        `yaml:"domain"`
	} `yaml:"session"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Matching struct {
		MaxDistanceKm       float64 `yaml:"max_distance_km"`
		RecommendationLimit int     `yaml:"recommendation_limit"`
	} `yaml:"matching"`

	Verification struct {
		CodeExpiry  time.Duration `yaml:"code_expiry"`
		ResetExpiry time.Duration `yaml:"reset_expiry"`
	} `yaml:"verification"`

	Delivery struct {
		Mode     string        `yaml:"mode"` // log, smtp, echo
		DedupTTL time.Duration `yaml:"dedup_ttl"`
	} `yaml:"delivery"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		ResetURL     string `yaml:"reset_url"`
	} `yaml:"email"`

	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		Rate    float64 `yaml:"rate"`
		Burst   float64 `yaml:"burst"`
	} `yaml:"rate_limit"`

	Workers struct {
		CleanupSchedule string        `yaml:"cleanup_schedule"`
		CleanupAfter    time.Duration `yaml:"cleanup_after"`
	} `yaml:"workers"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

const devSecret = "dev-secret-key-change-in-production"

// Default возвращает конфигурацию для локальной разработки
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5001
	cfg.Server.Env = "development"
	cfg.Server.ShutdownTimeout = 10 * time.Second

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "gigup.db"
	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 5
	cfg.Database.SlowThreshold = 200 * time.Millisecond

	cfg.Redis.Addr = "localhost:6379"

	cfg.Session.Secret = devSecret
	cfg.Session.CookieName = "gigup_session"
	cfg.Session.TTL = 7 * 24 * time.Hour

	cfg.CORS.AllowedOrigins = []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5000",
		"http://127.0.0.1:5000",
		"http://localhost:5001",
		"http://127.0.0.1:5001",
	}

	cfg.Matching.MaxDistanceKm = 35
	cfg.Matching.RecommendationLimit = 20

	cfg.Verification.CodeExpiry = 24 * time.Hour
	cfg.Verification.ResetExpiry = time.Hour

	cfg.Delivery.Mode = "log"
	cfg.Delivery.DedupTTL = time.Minute

	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@gigup.com"
	cfg.Email.FromName = "GigUp"

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Rate = 5
	cfg.RateLimit.Burst = 10

	cfg.Workers.CleanupSchedule = "@hourly"
	cfg.Workers.CleanupAfter = 24 * time.Hour

	cfg.FirstAdminEmail = "admin@gigup.com"
	cfg.FirstAdminPassword = "admin123"

	return &cfg
}

// Load читает .env (если есть), затем YAML по CONFIG_PATH поверх значений по умолчанию,
// затем применяет переменные окружения. Отсутствие файла конфигурации не ошибка.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
		// postgres://... без явного драйвера
		if os.Getenv("DATABASE_DRIVER") == "" && (strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://")) {
			c.Database.Driver = "postgres"
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("DELIVERY_MODE"); v != "" {
		c.Delivery.Mode = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		c.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		c.FirstAdminPassword = v
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Delivery.Mode {
	case "log", "smtp", "echo":
	default:
		return fmt.Errorf("unknown delivery mode %q", c.Delivery.Mode)
	}

	if c.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if c.IsProduction() && c.Session.Secret == devSecret {
		return errors.New("SECRET_KEY must be set in production")
	}
	if c.IsProduction() && c.Delivery.Mode == "echo" {
		return errors.New("echo delivery is not allowed in production")
	}
	if c.Delivery.Mode == "smtp" && c.Email.SMTPHost == "" {
		return errors.New("smtp delivery requires email.smtp_host")
	}
	if c.Matching.MaxDistanceKm <= 0 {
		return errors.New("matching.max_distance_km must be positive")
	}
	return nil
}
