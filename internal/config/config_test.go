package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/dbook/internal/money"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz", "llc_single_member")
	cfg.Currency = money.Currency{Code: "JPY", Symbol: "¥", Precision: 0}
	cfg.Storage.DBPath = "/var/lib/dbook/ledger.db"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "llc_single_member")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, "llc_single_member", cfg.Business.EntityType)
	assert.Equal(t, money.GBP, cfg.Currency)
	assert.Equal(t, "ledger.db", cfg.Storage.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "llc_single_member")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "entity_type: llc_single_member")
	assert.Contains(t, contents, "code: GBP")
	assert.Contains(t, contents, "precision: 2")
	assert.Contains(t, contents, "db_path: ledger.db")
}

func TestApplyEnvFromFile(t *testing.T) {
	// Registered so cleanup restores them after godotenv sets them.
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvDBPath))
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	t.Setenv(EnvLogFormat, "json")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvDBPath + "=/tmp/other.db\n" + EnvLogLevel + "=debug\n" + EnvLogFormat + "=text\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	cfg := Default("Biz", "llc_single_member")
	require.NoError(t, ApplyEnv(cfg, envFile))

	assert.Equal(t, "/tmp/other.db", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "process environment wins over the file")
}

func TestApplyEnvMissingFile(t *testing.T) {
	cfg := Default("Biz", "llc_single_member")
	err := ApplyEnv(cfg, filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
