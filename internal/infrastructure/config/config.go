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

// Config contém todas as configurações da aplicação
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OAuth     OAuthConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	I18n      I18nConfig
	RateLimit RateLimitConfig
	Reminder  ReminderConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	BaseURL     string // URL base da API para construir URIs RFC 7807
	FrontendURL string // destino do redirect após login com state=react
}

type DatabaseConfig struct {
	Driver      string // postgres | mysql | sqlite
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	Seed        bool
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

type I18nConfig struct {
	LocalesDir      string
	DefaultLanguage string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration
	LeadTime time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "3000")
	v.SetDefault("API_BASE_URL", "http://localhost:3000")
	v.SetDefault("FRONTEND_URL", "http://localhost:80")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_SEED", false)
	v.SetDefault("JWT_ACCESS_EXPIRY", "1h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOCALES_DIR", "") // vazio: locales embutidos
	v.SetDefault("DEFAULT_LANGUAGE", "pt")
	v.SetDefault("AUTH_RATE_LIMIT_RPS", 1.0)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 10)
	v.SetDefault("REMINDER_ENABLED", true)
	v.SetDefault("REMINDER_INTERVAL", "1m")
	v.SetDefault("REMINDER_LEAD_TIME", "3h")
}

// Load carrega as configurações do ambiente (e do arquivo .env, se existir)
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper monta a Config a partir de uma instância viper já populada
func FromViper(v *viper.Viper) (*Config, error) {
	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}
	reminderInterval, err := time.ParseDuration(v.GetString("REMINDER_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
	}
	reminderLead, err := time.ParseDuration(v.GetString("REMINDER_LEAD_TIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_LEAD_TIME: %w", err)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Host:        v.GetString("HOST"),
			BaseURL:     v.GetString("API_BASE_URL"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			Seed:        v.GetBool("DB_SEED"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleCallbackURL:  v.GetString("GOOGLE_CALLBACK_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		I18n: I18nConfig{
			LocalesDir:      v.GetString("LOCALES_DIR"),
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("AUTH_RATE_LIMIT_RPS"),
			Burst:             v.GetInt("AUTH_RATE_LIMIT_BURST"),
		},
		Reminder: ReminderConfig{
			Enabled:  v.GetBool("REMINDER_ENABLED"),
			Interval: reminderInterval,
			LeadTime: reminderLead,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica as configurações obrigatórias
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.Driver != "sqlite" && c.Database.DBName == "" {
		return errors.New("DB_NAME is required")
	}

	return nil
}

// IsProduction indica se a aplicação corre em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN retorna a connection string do driver configurado
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName,
		)
	case "sqlite":
		if d.DBName == "" {
			return "file:agendamento.db?_foreign_keys=on"
		}
		return d.DBName
	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
		)
	}
}
