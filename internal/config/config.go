package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Session   SessionConfig   `toml:"session"`
	Email     EmailConfig     `toml:"email"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Export    ExportConfig    `toml:"export"`
}

type ServerConfig struct {
	Addr  string `toml:"addr"`
	Debug bool   `toml:"debug"`
	// BaseURL is the public origin used in email links.
	BaseURL string `toml:"base_url"`
}

type StorageConfig struct {
	// Dir holds one JSON record file per tool plus the course catalog.
	Dir string `toml:"dir"`
	// AuditPath is the sqlite database for the reminder audit log.
	AuditPath string `toml:"audit_path"`
}

type SessionConfig struct {
	// SecretKey signs the session cookie. KUDIMARA_SECRET_KEY overrides it.
	SecretKey     string `toml:"secret_key"`
	CookieName    string `toml:"cookie_name"`
	LifetimeHours int    `toml:"lifetime_hours"`
}

type EmailConfig struct {
	// APIToken and From fall back to MAIL_API_TOKEN / MAIL_FROM.
	// Sending is disabled when either is empty.
	APIToken    string `toml:"api_token"`
	From        string `toml:"from"`
	ProviderURL string `toml:"provider_url"`
	TimeoutSec  int    `toml:"timeout_sec"`
}

type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
	// IntervalHours is the cadence of the overdue sweep + reminder dispatch.
	IntervalHours int `toml:"interval_hours"`
	// TaskDeadlineSec is the soft deadline per task; on expiry the task
	// keeps what it has committed and logs a truncation warning.
	TaskDeadlineSec int `toml:"task_deadline_sec"`
}

type ExportConfig struct {
	// SheetsWebhookURL, when set, receives finalized budget records as a
	// best-effort side channel. SHEETS_WEBHOOK_URL overrides it.
	SheetsWebhookURL string `toml:"sheets_webhook_url"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8080",
			BaseURL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			Dir:       "data",
			AuditPath: "data/reminders.db",
		},
		Session: SessionConfig{
			SecretKey:     "change-me-in-production",
			CookieName:    "kudimara_session",
			LifetimeHours: 24,
		},
		Email: EmailConfig{
			ProviderURL: "https://api.mailersend.com/v1/email",
			TimeoutSec:  10,
		},
		Scheduler: SchedulerConfig{
			Enabled:         true,
			IntervalHours:   24,
			TaskDeadlineSec: 300,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets secrets come from the environment instead of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("KUDIMARA_SECRET_KEY"); v != "" {
		c.Session.SecretKey = v
	}
	if v := os.Getenv("MAIL_API_TOKEN"); v != "" {
		c.Email.APIToken = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		c.Email.From = v
	}
	if v := os.Getenv("SHEETS_WEBHOOK_URL"); v != "" {
		c.Export.SheetsWebhookURL = v
	}
}

// EmailEnabled reports whether outbound email credentials are present.
func (c *Config) EmailEnabled() bool {
	return c.Email.APIToken != "" && c.Email.From != ""
}
