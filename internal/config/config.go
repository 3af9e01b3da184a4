package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/learnbuddy/learnbuddy/internal/convo"
)

// Config holds client and local server settings.
type Config struct {
	// Server is the backend base URL the client talks to.
	Server string

	// Mode is the initial conversation mode.
	Mode string

	// Timeout bounds each backend request. Zero means no timeout.
	Timeout time.Duration

	// User is the name sent with session reports.
	User string

	// DBPath is the tutor backend's SQLite file. Empty selects the default.
	DBPath string

	// LogFile overrides the log location. Empty selects the default.
	LogFile string

	// Addr is the listen address of the local tutor backend.
	Addr string

	Slack SlackConfig
}

// SlackConfig holds session report delivery settings.
type SlackConfig struct {
	WebhookURL     string
	BotToken       string
	DefaultChannel string
}

// Configured reports whether any delivery method is set.
func (s SlackConfig) Configured() bool {
	return s.BotToken != "" || s.WebhookURL != ""
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: "http://localhost:5000",
		Mode:   string(convo.ModeAsk),
		Addr:   ":5000",
		Slack: SlackConfig{
			DefaultChannel: "#learning-reports",
		},
	}
}

// Load reads an optional .env file from the working directory and then
// builds the Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("LEARNBUDDY_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("LEARNBUDDY_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("LEARNBUDDY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("LEARNBUDDY_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("LEARNBUDDY_USER"); v != "" {
		cfg.User = v
	} else if v := os.Getenv("USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("LEARNBUDDY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LEARNBUDDY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LEARNBUDDY_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Slack.WebhookURL = v
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_DEFAULT_CHANNEL"); v != "" {
		cfg.Slack.DefaultChannel = v
	}

	return cfg, nil
}

// ConversationMode returns Mode parsed as a convo.Mode.
func (c Config) ConversationMode() (convo.Mode, error) {
	return convo.ParseMode(c.Mode)
}

// Validate checks the client-side settings.
func (c Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LEARNBUDDY_SERVER must be an http(s) URL, got %q", c.Server)
	}
	if _, err := c.ConversationMode(); err != nil {
		return fmt.Errorf("LEARNBUDDY_MODE: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("LEARNBUDDY_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	return nil
}

// ValidateServer checks the settings the local tutor backend needs.
func (c Config) ValidateServer() error {
	if c.Addr == "" {
		return fmt.Errorf("LEARNBUDDY_ADDR is required")
	}
	if c.Slack.WebhookURL != "" {
		if u, err := url.Parse(c.Slack.WebhookURL); err != nil || u.Scheme != "https" {
			return fmt.Errorf("SLACK_WEBHOOK_URL must be an https URL")
		}
	}
	return nil
}
