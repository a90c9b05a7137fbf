package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
strict: true
skip_unknown: true
comment_prefixes: ["$", "&&"]
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Strict)
	require.True(t, cfg.SkipUnknown)
	require.Equal(t, []string{"$", "&&"}, cfg.CommentPrefixes)

	level, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "strict: true\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"$"}, cfg.CommentPrefixes)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	// Without an explicit path a missing deck.yaml means defaults.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"level":  "log_level: loud\n",
		"prefix": "comment_prefixes: [\" \"]\n",
		"yaml":   "strict: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}
