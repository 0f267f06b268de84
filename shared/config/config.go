package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Filter     FilterConfig     `yaml:"filter"`
	Export     ExportConfig     `yaml:"export"`
	Email      EmailConfig      `yaml:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Log        LogConfig        `yaml:"log"`
	Schedule   string           `yaml:"schedule"`
}

// SourceConfig points at a saved history page, a raw ytInitialData dump or
// an http(s) URL serving either.
type SourceConfig struct {
	Location     string        `yaml:"location" env:"HISTORY_SOURCE"`
	MaxAttempts  int           `yaml:"max_attempts"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// FilterConfig is the filter applied to the logged report.
type FilterConfig struct {
	Query            string `yaml:"query"`
	HideFullyWatched bool   `yaml:"hide_fully_watched"`
}

type ExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether enough is configured to send mail.
func (e EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.ToEmail != ""
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile parses a YAML config file. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HISTORY_SOURCE"); v != "" {
		c.Source.Location = v
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Source.MaxAttempts == 0 {
		c.Source.MaxAttempts = 20
	}
	if c.Source.PollInterval == 0 {
		c.Source.PollInterval = 500 * time.Millisecond
	}
	if c.Export.Path == "" {
		c.Export.Path = "youtube_history.csv"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Schedule == "" {
		c.Schedule = "0 */30 * * * *" // Every 30 minutes
	}
}

func (c *Config) validate() error {
	if c.Source.Location == "" {
		return fmt.Errorf("history source is required (set HISTORY_SOURCE or source.location)")
	}
	if c.Source.MaxAttempts < 1 {
		return fmt.Errorf("source.max_attempts must be positive, got %d", c.Source.MaxAttempts)
	}
	if c.Source.PollInterval < 0 {
		return fmt.Errorf("source.poll_interval must not be negative, got %v", c.Source.PollInterval)
	}
	if c.Email.Enabled() && c.Email.FromEmail == "" {
		return fmt.Errorf("email.from_email is required when email.to_email is set")
	}
	return nil
}
