package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10, cfg.Table.ItemsPerPage)
	assert.Equal(t, 5, cfg.Table.PageButtons)
	assert.Equal(t, 10, cfg.Subscriptions.MaxEntries)
	assert.Equal(t, 2*time.Hour, cfg.Subscriptions.DraftTTL)
	assert.Equal(t, "@every 5m", cfg.Snapshot.RefreshSpec)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TABLE_ITEMS_PER_PAGE", "25")
	t.Setenv("SUBSCRIPTION_MAX_ENTRIES", "3")
	t.Setenv("SUBSCRIPTION_DRAFT_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Table.ItemsPerPage)
	assert.Equal(t, 3, cfg.Subscriptions.MaxEntries)
	assert.Equal(t, 2*time.Hour, cfg.Subscriptions.DraftTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 7, positiveOr(0, 7))
	assert.Equal(t, 7, positiveOr(-2, 7))
	assert.Equal(t, 3, positiveOr(3, 7))
}

func TestLoadRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-long-production-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
}
