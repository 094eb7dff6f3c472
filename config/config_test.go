package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "telatour", cfg.DatabaseName)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadReadsSecretKeysFromEnv(t *testing.T) {
	// Secrets have no defaults, so they resolve through the explicit
	// env bindings rather than AutomaticEnv.
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "mailer-pass")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, "mailer", cfg.SMTPUser)
	assert.Equal(t, "mailer-pass", cfg.SMTPPass)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestAllowedOriginsTrimsAndDropsEmpty(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.example , https://b.example ,, "}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
