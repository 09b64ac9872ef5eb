// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mindtrack")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "MindTrack", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, time.UTC, cfg.App.Location())
	assert.Equal(t, 60, cfg.RateLimit.UserRequests)
	assert.Equal(t, 10, cfg.RateLimit.UserBurst)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:mindtrack.db")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("TZ_NAME", "Europe/Berlin")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:mindtrack.db", cfg.Database.URL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Europe/Berlin", cfg.App.Location().String())
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mindtrack")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("app:\n  name: Habits\nrate_limit:\n  requests: 7\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Habits", cfg.App.Name)
	assert.Equal(t, 7, cfg.RateLimit.Requests)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"DATABASE_URL": ""},
		},
		{
			name: "unknown driver",
			env: map[string]string{
				"DATABASE_URL":    "x",
				"DATABASE_DRIVER": "mysql",
			},
		},
		{
			name: "bad timezone",
			env: map[string]string{
				"DATABASE_URL": "x",
				"TZ_NAME":      "Mars/Olympus",
			},
		},
		{
			name: "insecure otel in production",
			env: map[string]string{
				"DATABASE_URL":  "x",
				"ENVIRONMENT":   "production",
				"OTEL_ENABLED":  "true",
				"OTEL_INSECURE": "true",
			},
		},
		{
			name: "negative per-user limit",
			env: map[string]string{
				"DATABASE_URL":             "x",
				"RATE_LIMIT_USER_REQUESTS": "-1",
			},
		},
		{
			name: "per-user limit without burst",
			env: map[string]string{
				"DATABASE_URL":          "x",
				"RATE_LIMIT_USER_BURST": "0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
