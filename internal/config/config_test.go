package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnbuddy/learnbuddy/internal/convo"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:5000", cfg.Server)
	assert.Equal(t, "ask", cfg.Mode)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.Slack.Configured())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LEARNBUDDY_SERVER", "https://buddy.example.com")
	t.Setenv("LEARNBUDDY_MODE", "practice")
	t.Setenv("LEARNBUDDY_TIMEOUT", "45s")
	t.Setenv("LEARNBUDDY_USER", "ada")
	t.Setenv("LEARNBUDDY_DB", "/tmp/buddy.db")
	t.Setenv("LEARNBUDDY_ADDR", "127.0.0.1:8080")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_DEFAULT_CHANNEL", "#study")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://buddy.example.com", cfg.Server)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "ada", cfg.User)
	assert.Equal(t, "/tmp/buddy.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.True(t, cfg.Slack.Configured())
	assert.Equal(t, "#study", cfg.Slack.DefaultChannel)

	mode, err := cfg.ConversationMode()
	require.NoError(t, err)
	assert.Equal(t, convo.ModePractice, mode)
}

func TestFromEnv_BadTimeout(t *testing.T) {
	t.Setenv("LEARNBUDDY_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEARNBUDDY_USER=grace\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("LEARNBUDDY_USER")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "grace", cfg.User)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no scheme", func(c *Config) { c.Server = "localhost:5000" }, true},
		{"bad mode", func(c *Config) { c.Mode = "quiz" }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"recommendations mode", func(c *Config) { c.Mode = "recommendations" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ValidateServer())

	cfg.Slack.WebhookURL = "http://hooks.example.com/x"
	assert.Error(t, cfg.ValidateServer())

	cfg.Slack.WebhookURL = "https://hooks.slack.com/services/x"
	assert.NoError(t, cfg.ValidateServer())

	cfg.Addr = ""
	assert.Error(t, cfg.ValidateServer())
}
