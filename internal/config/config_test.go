package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "campaigns.csv", cfg.DatasetCSV)
	assert.Equal(t, "roi_model.json", cfg.ModelPath)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	// The demo credential table kicks in when nothing is configured.
	assert.Len(t, cfg.Users, 3)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "insight.yaml")
	content := `
port: "9090"
dataset_db: campaigns.db
logo_path: logo.png
log_level: debug
users:
  - email: ceo@acme.com
    secret: s3cret
    role: Admin
    tenant: Acme Corp
    team_lead: R. Singh
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "campaigns.db", cfg.DatasetDB)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Len(t, cfg.Users, 1)
	assert.Equal(t, "Acme Corp", cfg.Users[0].Tenant)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INSIGHT_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoadEnvOverrideWithoutDefault(t *testing.T) {
	chdir(t, t.TempDir())
	// dataset_db and logo_path have no defaults; their env overrides must
	// still land so an env-only deployment can select the SQL variant.
	t.Setenv("INSIGHT_DATASET_DB", "/data/campaigns.db")
	t.Setenv("INSIGHT_LOGO_PATH", "/data/logo.png")
	t.Setenv("INSIGHT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/campaigns.db", cfg.DatasetDB)
	assert.Equal(t, "/data/logo.png", cfg.LogoPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}
