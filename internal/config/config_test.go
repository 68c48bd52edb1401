package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismBooking/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "SESSION_SECRET", "SESSION_BACKEND", "DB_DRIVER",
		"DB_ADMIN_USER", "DB_ADMIN_PASSWORD", "DB_AGENT_USER", "DB_AGENT_PASSWORD",
		"DB_ACCOUNTANT_USER", "DB_ACCOUNTANT_PASSWORD", "DB_MAX_OPEN_CONNS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, devSessionSecret, cfg.Session.Secret)
	assert.True(t, cfg.Database.StrictRoles)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	for _, r := range models.Roles() {
		c := cfg.Database.Credential(r)
		assert.Equal(t, string(r), c.User)
		assert.Equal(t, string(r), c.Password)
	}
}

func TestLoad_RequiresSecrets(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.Error(t, err, "expected error when SESSION_SECRET is not set")

	t.Setenv("SESSION_SECRET", "x")
	_, err = Load()
	require.Error(t, err, "expected error when database passwords are not set")

	t.Setenv("DB_ADMIN_PASSWORD", "a")
	t.Setenv("DB_AGENT_PASSWORD", "b")
	t.Setenv("DB_ACCOUNTANT_PASSWORD", "c")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.Database.Credential(models.RoleAgent).Password)
}

func TestLoad_RedisBackendNeedsNoSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("DB_DRIVER", "sqlite3")
	_, err := Load()
	require.NoError(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err := LoadWithDefaults()
	require.Error(t, err)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: prod
http:
  address: ":9090"
database:
  driver: sqlite3
  name: "file:app.db"
  agent:
    user: travel_agent
    password: pw
session:
  secret: s3cr3t
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "travel_agent", cfg.Database.Agent.User)
	assert.Equal(t, "admin", cfg.Database.Admin.User)
}

func TestString_MasksSecrets(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	require.NoError(t, err)
	s := cfg.String()
	assert.NotContains(t, s, devSessionSecret)
	assert.Contains(t, s, "masked")
}
