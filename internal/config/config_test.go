package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, conf.Logger.Level)
	assert.Equal(t, ":3000", conf.HTTP.Address)
	assert.Equal(t, []string{"openid", "email", "profile"}, conf.HTTP.Authn.OIDC.Scopes)
	assert.Equal(t, 10*time.Second, conf.HTTP.Authn.OIDC.Timeout)
	assert.Equal(t, "story.db", conf.Storage.Database.DSN)
	assert.False(t, conf.Storage.Tags.Atomic)
	assert.Equal(t, 5, conf.Storage.Database.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, conf.Storage.Database.RetryDelay)
	assert.False(t, conf.Storage.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, conf.Storage.Cache.TTL)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("INSTANTS_LOGGER_LEVEL", "debug")
	t.Setenv("INSTANTS_HTTP_AUTHZ_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("INSTANTS_HTTP_SESSION_KEYS", "first,second")
	t.Setenv("INSTANTS_STORAGE_TAGS_ATOMIC", "true")
	t.Setenv("INSTANTS_STORAGE_DATABASE_MAX_RETRIES", "2")
	t.Setenv("INSTANTS_STORAGE_CACHE_ENABLED", "true")

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, conf.Logger.Level)
	assert.Equal(t, "admin@example.com", conf.HTTP.Authz.AdminEmail)
	assert.Equal(t, []string{"first", "second"}, conf.HTTP.Session.Keys)
	assert.True(t, conf.Storage.Tags.Atomic)
	assert.Equal(t, 2, conf.Storage.Database.MaxRetries)
	assert.True(t, conf.Storage.Cache.Enabled)
}
