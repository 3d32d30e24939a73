package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	AllowedOrigins []string
	EnvFileLoaded  bool

	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
	Stripe     StripeConfig
	Restaurant RestaurantConfig
	Order      OrderConfig
	DevAdmin   DevAdminConfig
	Bootstrap  BootstrapAdminConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConnections int
	MinConnections int
	RunMigrations  bool
}

type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	Secret      string
	Expiry      time.Duration
	ResetExpiry time.Duration
	CookieName  string
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	From       string
	AdminEmail string
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

// RestaurantConfig holds the contact details used when the settings row is
// missing or the database is not configured.
type RestaurantConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
	MapLink string
}

type OrderConfig struct {
	VerifyPrices bool
}

// DevAdminConfig is the credential pair accepted by /admin/auth when no
// database is configured. Never honoured in production.
type DevAdminConfig struct {
	Email    string
	Password string
}

// BootstrapAdminConfig seeds the first admin account on startup when both
// fields are set.
type BootstrapAdminConfig struct {
	Email    string
	Name     string
	Password string
}

func (c *BootstrapAdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AllowedOrigins: splitList(getEnv("ORIGIN_URL", "")),
		EnvFileLoaded:  loaded,
		Server: ServerConfig{
			Host: getEnv("APP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("APP_PORT", getEnvAsInt("PORT", 8082)),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", ""),
			Port:           getEnvAsInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "kuuslauk"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 2),
			RunMigrations:  getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      getEnvAsDuration("REDIS_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "secret"),
			Expiry:      getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
			ResetExpiry: getEnvAsDuration("JWT_RESET_EXPIRY", 30*time.Minute),
			CookieName:  getEnv("JWT_COOKIE_NAME", "admin_token"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			User:       getEnv("SMTP_USER", ""),
			Pass:       getEnv("SMTP_PASS", ""),
			From:       getEnv("SMTP_FROM", "Küüslauk Wok & Kebab <no-reply@kuuslauk.ee>"),
			AdminEmail: getEnv("ADMIN_EMAIL", ""),
		},
		Cloudinary: CloudinaryConfig{
			URL:       getEnv("CLOUDINARY_URL", ""),
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "kuuslauk"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			BaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		},
		Restaurant: RestaurantConfig{
			Name:    getEnv("RESTAURANT_NAME", "KÜÜSLAUK"),
			Address: getEnv("RESTAURANT_ADDRESS", "Sadama tn 7, 10111 Tallinn"),
			Phone:   getEnv("RESTAURANT_PHONE", "5424 0020"),
			Email:   getEnv("RESTAURANT_EMAIL", "info@kuuslauk.ee"),
			MapLink: getEnv("RESTAURANT_MAP_LINK", "https://maps.app.goo.gl/MC6A1CWw34dXzTsk9"),
		},
		Order: OrderConfig{
			VerifyPrices: getEnvAsBool("ORDER_VERIFY_PRICES", true),
		},
		DevAdmin: DevAdminConfig{
			Email:    getEnv("DEV_ADMIN_EMAIL", "admin@kuuslauk.ee"),
			Password: getEnv("DEV_ADMIN_PASSWORD", "kuuslauk2024"),
		},
		Bootstrap: BootstrapAdminConfig{
			Email:    getEnv("ADMIN_BOOTSTRAP_EMAIL", ""),
			Name:     getEnv("ADMIN_BOOTSTRAP_NAME", "Admin"),
			Password: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Enabled() {
		if c.Database.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.Database.MinConnections < 0 || c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections must be between 0 and max connections")
		}
	}

	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("invalid JWT expiry: %s", c.JWT.Expiry)
	}

	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == "secret") {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Bootstrap.Enabled() && len(c.Bootstrap.Password) < 8 {
		return fmt.Errorf("ADMIN_BOOTSTRAP_PASSWORD must be at least 8 characters")
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether any database connection settings were provided.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

func (c *SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

func (c *CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

func (c *StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

func (c *RedisConfig) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
