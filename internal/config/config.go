package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// UploadLimits bounds what a single upload path accepts
type UploadLimits struct {
	MaxBytes     int64  `yaml:"max_bytes"`
	AllowedTypes string `yaml:"allowed_types"` // comma separated MIME types
}

// Types returns the allow-list as a slice
func (u UploadLimits) Types() []string {
	var out []string
	for _, t := range strings.Split(u.AllowedTypes, ",") {
		if t = strings.TrimSpace(strings.ToLower(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL      string `yaml:"base_url" env:"SERVER_BASE_URL"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                   string `yaml:"secret" env:"JWT_SECRET"`
		AdminTokenExpiration     string `yaml:"admin_token_expiration" env:"JWT_ADMIN_TOKEN_EXPIRATION"`
		StudentSessionExpiration string `yaml:"student_session_expiration" env:"JWT_STUDENT_SESSION_EXPIRATION"`
		Issuer                   string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level        string `yaml:"level" env:"LOG_LEVEL"`
		Format       string `yaml:"format" env:"LOG_FORMAT"`
		RollbarToken string `yaml:"rollbar_token" env:"ROLLBAR_TOKEN"`
		Environment  string `yaml:"environment" env:"APP_ENV"`
	} `yaml:"logging"`

	Storage struct {
		BasePath        string `yaml:"base_path" env:"STORAGE_BASE_PATH"`
		DocumentsBucket string `yaml:"documents_bucket" env:"STORAGE_DOCUMENTS_BUCKET"`
		FormsBucket     string `yaml:"forms_bucket" env:"STORAGE_FORMS_BUCKET"`
		DocumentURLTTL  string `yaml:"document_url_ttl" env:"STORAGE_DOCUMENT_URL_TTL"`
		FormURLTTL      string `yaml:"form_url_ttl" env:"STORAGE_FORM_URL_TTL"`
	} `yaml:"storage"`

	Upload struct {
		Student UploadLimits `yaml:"student"`
		Admin   UploadLimits `yaml:"admin"`
	} `yaml:"upload"`

	Mail struct {
		Provider       string `yaml:"provider" env:"MAIL_PROVIDER"`
		SMTPHost       string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort       int    `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUsername   string `yaml:"smtp_username" env:"SMTP_USERNAME"`
		SMTPPassword   string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		SMTPUseTLS     bool   `yaml:"smtp_use_tls" env:"SMTP_USE_TLS"`
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		FromName       string `yaml:"from_name" env:"MAIL_FROM_NAME"`
		FromEmail      string `yaml:"from_email" env:"MAIL_FROM_EMAIL"`
	} `yaml:"mail"`

	App struct {
		SiteURL       string `yaml:"site_url" env:"APP_SITE_URL"`
		ResetTokenTTL string `yaml:"reset_token_ttl" env:"APP_RESET_TOKEN_TTL"`
	} `yaml:"app"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		AdminName     string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "counselling"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AdminTokenExpiration = "12h"
	config.JWT.StudentSessionExpiration = "24h"
	config.JWT.Issuer = "counselling.futureedge"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Environment = "development"

	config.Storage.BasePath = "storage"
	config.Storage.DocumentsBucket = "student-documents"
	config.Storage.FormsBucket = "student-forms"
	config.Storage.DocumentURLTTL = "1h"
	config.Storage.FormURLTTL = "5m"

	config.Upload.Student = UploadLimits{
		MaxBytes:     5 << 20,
		AllowedTypes: "image/png,image/jpeg,image/jpg",
	}
	config.Upload.Admin = UploadLimits{
		MaxBytes:     10 << 20,
		AllowedTypes: "image/png,image/jpeg,image/jpg,application/pdf",
	}

	config.Mail.Provider = "log"
	config.Mail.SMTPPort = 587
	config.Mail.FromName = "FutureEdge Counselling"
	config.Mail.FromEmail = "no-reply@futureedge.local"

	config.App.SiteURL = "http://localhost:3000"
	config.App.ResetTokenTTL = "1h"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"jwt.admin_token_expiration":     config.JWT.AdminTokenExpiration,
		"jwt.student_session_expiration": config.JWT.StudentSessionExpiration,
		"storage.document_url_ttl":       config.Storage.DocumentURLTTL,
		"storage.form_url_ttl":           config.Storage.FormURLTTL,
		"app.reset_token_ttl":            config.App.ResetTokenTTL,
	}
	for key, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}
	}

	if config.Upload.Student.MaxBytes <= 0 || config.Upload.Admin.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive")
	}

	switch config.Mail.Provider {
	case "log", "smtp", "sendgrid":
	default:
		return fmt.Errorf("unknown mail provider %q", config.Mail.Provider)
	}
	if config.Mail.Provider == "sendgrid" && config.Mail.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid api key is required when mail provider is sendgrid")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
