package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("db", "", "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	return cmd
}

func TestResolveDBPath_FlagWins(t *testing.T) {
	cmd := testCmd(t)
	flagPath := filepath.Join(t.TempDir(), "nested", "flag.db")
	require.NoError(t, cmd.Flags().Set("db", flagPath))

	got, err := resolveDBPath(cmd, filepath.Join(t.TempDir(), "configured.db"))
	require.NoError(t, err)
	assert.Equal(t, flagPath, got)
	assert.DirExists(t, filepath.Dir(flagPath))
}

func TestResolveDBPath_Configured(t *testing.T) {
	configured := filepath.Join(t.TempDir(), "sub", "configured.db")

	got, err := resolveDBPath(testCmd(t), configured)
	require.NoError(t, err)
	assert.Equal(t, configured, got)
	assert.DirExists(t, filepath.Dir(configured))
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("JSQUIZ_DB", "")
	t.Setenv("JSQUIZ_LOG_LEVEL", "warn")

	cmd := testCmd(t)
	dbPath := filepath.Join(t.TempDir(), "x.db")
	require.NoError(t, cmd.Flags().Set("db", dbPath))
	require.NoError(t, cmd.Flags().Set("log-level", "debug"))

	cfg, dataDir, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "jsquiz"), dataDir)
	assert.Equal(t, dbPath, cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := testCmd(t)
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.toml")))

	_, _, err := loadConfig(cmd)
	assert.Error(t, err)
}
