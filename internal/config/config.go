package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for the debt engine.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"DATABASE_URL"`
	Host     string `mapstructure:"DATABASE_HOST"`
	Port     string `mapstructure:"DATABASE_PORT"`
	Name     string `mapstructure:"DATABASE_NAME"`
	User     string `mapstructure:"DATABASE_USER"`
	Password string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode  string `mapstructure:"DATABASE_SSLMODE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	OverdueSpec  string `mapstructure:"SCHEDULER_OVERDUE_SPEC"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type NotifyConfig struct {
	GatewayURL       string `mapstructure:"NOTIFY_GATEWAY_URL"`
	Timeout          string `mapstructure:"NOTIFY_TIMEOUT"`
	ReminderLeadDays int    `mapstructure:"NOTIFY_REMINDER_LEAD_DAYS"`
}

type CacheConfig struct {
	ReportTTL string `mapstructure:"CACHE_REPORT_TTL"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULER_REMINDER_SPEC", "0 0 7 * * *")
	viper.SetDefault("SCHEDULER_OVERDUE_SPEC", "0 0 10 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Africa/Maputo")
	viper.SetDefault("NOTIFY_TIMEOUT", "10s")
	viper.SetDefault("NOTIFY_REMINDER_LEAD_DAYS", 2)
	viper.SetDefault("CACHE_REPORT_TTL", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.AutomaticEnv()

	// Optional .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && (c.Database.Name == "" || c.Database.User == "") {
		return fmt.Errorf("DATABASE_URL or DATABASE_NAME/DATABASE_USER is required")
	}

	if c.Notify.ReminderLeadDays < 0 {
		return fmt.Errorf("NOTIFY_REMINDER_LEAD_DAYS must not be negative")
	}

	cronParser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := cronParser.Parse(c.Scheduler.ReminderSpec); err != nil {
		return fmt.Errorf("SCHEDULER_REMINDER_SPEC is not a valid cron expression: %w", err)
	}
	if _, err := cronParser.Parse(c.Scheduler.OverdueSpec); err != nil {
		return fmt.Errorf("SCHEDULER_OVERDUE_SPEC is not a valid cron expression: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE is not a valid location: %w", err)
	}

	if _, err := time.ParseDuration(c.Notify.Timeout); err != nil {
		return fmt.Errorf("NOTIFY_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Cache.ReportTTL); err != nil {
		return fmt.Errorf("CACHE_REPORT_TTL must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns the postgres connection string, preferring DATABASE_URL
// when set over the individual parts.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Addr returns the redis host:port address.
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Location resolves the scheduler timezone. Validate has already
// checked the name, so errors cannot occur here.
func (c *SchedulerConfig) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Timezone)
	return loc
}

// GetNotifyTimeout returns the notification gateway timeout as duration
func (c *Config) GetNotifyTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Notify.Timeout)
	return timeout
}

// GetReportTTL returns the cached report lifetime as duration
func (c *Config) GetReportTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Cache.ReportTTL)
	return ttl
}
