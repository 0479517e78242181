package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCredsJSON = `{"uri":"mongodb://localhost:27017","database":"portal"}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ============================================================================
// ResolveCredentials
// ============================================================================

func TestResolveCredentials_EnvWinsOverFile(t *testing.T) {
	file := writeFile(t, "serviceAccountKey.json", `{"uri":"mongodb://file:27017","database":"fromfile"}`)

	creds, err := ResolveCredentials(validCredsJSON, file)

	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", creds.URI)
	assert.Equal(t, "portal", creds.Database)
	assert.Equal(t, "env:"+CredentialsEnvVar, creds.Source)
}

func TestResolveCredentials_FallsBackToFile(t *testing.T) {
	file := writeFile(t, "serviceAccountKey.json", `{"uri":"mongodb://file:27017","database":"fromfile"}`)

	creds, err := ResolveCredentials("", file)

	require.NoError(t, err)
	assert.Equal(t, "fromfile", creds.Database)
	assert.Equal(t, "file:"+file, creds.Source)
}

func TestResolveCredentials_FailsWhenBothAbsent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	_, err := ResolveCredentials("", missing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), CredentialsEnvVar)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestResolveCredentials_InvalidJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "malformed", json: `{not json`},
		{name: "missing uri", json: `{"database":"portal"}`},
		{name: "missing database", json: `{"uri":"mongodb://localhost"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveCredentials(tt.json, "")
			assert.Error(t, err)
		})
	}
}

// ============================================================================
// Load
// ============================================================================

func TestLoad_DefaultsWithEnvCredentials(t *testing.T) {
	t.Setenv(CredentialsEnvVar, validCredsJSON)
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "portal", cfg.Credentials.Database)
	assert.Equal(t, 100, cfg.Leaderboard.DefaultSize)
	assert.Equal(t, "quiz_portal_profiles", cfg.Media.Folder)
	assert.Equal(t, "https://i.stack.imgur.com/34AD2.jpg", cfg.Leaderboard.DefaultProfilePic)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FileValuesAndEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: "8081"
redis:
  addr: "localhost:6379"
leaderboard:
  default_size: 50
  max_size: 100
`)
	t.Setenv(CredentialsEnvVar, validCredsJSON)
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port, "Переменная окружения должна перекрывать файл")
	assert.Equal(t, 50, cfg.Leaderboard.DefaultSize)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_MissingCredentialsFailsFast(t *testing.T) {
	t.Setenv(CredentialsEnvVar, "")
	t.Setenv("STORE_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "absent.json"))

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credentials not found")
}

func TestLoad_PostgresRequiresConnectionSettings(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreDriverPostgres)
	t.Setenv("DATABASE_HOST", "")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres configuration")
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestLoadWithDriver_OverridesConfiguredDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("DATABASE_HOST", "db.local")
	t.Setenv("DATABASE_USER", "portal")
	t.Setenv("DATABASE_DBNAME", "portal")

	cfg, err := LoadWithDriver("", StoreDriverPostgres)

	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "db.local", cfg.Postgres.Host)
}
