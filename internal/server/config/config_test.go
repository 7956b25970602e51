package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/config"
)

// очищаем переменные, которые читает ApplyEnvOverrides
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
}

func TestExpandEnvStrict_ReplacesExistingEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017/app")

	out := config.ExpandEnvStrict(`uri: "${MONGO_URI}"`)

	require.Equal(t, `uri: "mongodb://db:27017/app"`, out)
}

func TestExpandEnvStrict_LeavesUnknownEnvAsIs(t *testing.T) {
	in := `uri: "${MISSING_ENV_FOR_TEST}"`
	out := config.ExpandEnvStrict(in)

	require.Equal(t, in, out)
}

func TestApplyDefaults_SetsExpectedDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	require.Equal(t, "users", cfg.DB.Collection)
	require.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := minimalValidConfig()

	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://other:27017")
	t.Setenv("MONGO_DB", "people")
	cfg.ApplyEnvOverrides()

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "mongodb://other:27017", cfg.DB.URI)
	require.Equal(t, "people", cfg.DB.Name)
}

func TestApplyEnvOverrides_IgnoresBadPort(t *testing.T) {
	cfg := minimalValidConfig()

	t.Setenv("PORT", "not-a-port")
	cfg.ApplyEnvOverrides()

	require.Equal(t, 3000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"uri required", func(c *config.Config) { c.DB.URI = "" }},
		{"unexpanded uri", func(c *config.Config) { c.DB.URI = "${MONGO_URI}" }},
		{"wrong scheme", func(c *config.Config) { c.DB.URI = "postgres://example" }},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }},
		{"negative body limit", func(c *config.Config) { c.Server.MaxBodyBytes = -1 }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "trace" }},
		{"pool sizes", func(c *config.Config) { c.DB.MinPoolSize = 10; c.DB.MaxPoolSize = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalValidConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_MinimalConfigIsValid(t *testing.T) {
	require.NoError(t, minimalValidConfig().Validate())
}

func TestLoad_WithoutFile_UsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/users")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "mongodb://localhost:27017/users", cfg.DB.URI)
}

func TestLoad_WithoutFileAndURI_Fails(t *testing.T) {
	clearEnv(t)

	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoad_ExpandsEnv_AppliesDefaults_AndValidates(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_USERS_MONGO_URI", "mongodb://localhost:27017")

	yml := `
env: "prod"
server:
  port: 8081
  shutdown_timeout: 3s
db:
  uri: "${TEST_USERS_MONGO_URI}"
  name: "people"
  query_timeout: 2s
log:
  format: "json"
swagger:
  enabled: true
`
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "mongodb://localhost:27017", cfg.DB.URI)
	require.Equal(t, "people", cfg.DB.Name)
	require.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Swagger.Enabled)
	// дефолты проставились
	require.Equal(t, "users", cfg.DB.Collection)
	require.False(t, strings.Contains(cfg.DB.URI, "${"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8081\ndb:\n  uri: \"mongodb://file:27017\"\n"), 0o600))

	t.Setenv("PORT", "4000")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestResolveDatabase(t *testing.T) {
	name, err := config.ResolveDatabase(config.DBConfig{URI: "mongodb://localhost:27017/app", Name: "explicit"})
	require.NoError(t, err)
	require.Equal(t, "explicit", name)

	name, err = config.ResolveDatabase(config.DBConfig{URI: "mongodb://localhost:27017/app"})
	require.NoError(t, err)
	require.Equal(t, "app", name)

	name, err = config.ResolveDatabase(config.DBConfig{URI: "mongodb://localhost:27017"})
	require.NoError(t, err)
	require.Equal(t, config.DefaultDatabase, name)
}

func TestConfig_Addr(t *testing.T) {
	cfg := minimalValidConfig()
	require.Equal(t, "127.0.0.1:3000", cfg.Addr())
}

// --- helpers ---

func minimalValidConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		DB: config.DBConfig{
			URI: "mongodb://localhost:27017",
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}
