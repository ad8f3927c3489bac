// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("server", nil, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "0.0.0.0:8081", cfg.PortalAddr)
	assert.Equal(t, "kvdb://glossa.db", cfg.DB)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Empty(t, cfg.Seed)
}

func TestLoadPrecedence(t *testing.T) {
	env := envMap(map[string]string{
		"GLOSSA_DB":        "jsondb://from-env",
		"GLOSSA_LOG_LEVEL": "debug",
		"GLOSSA_ADMIN":     "editor",
		"GLOSSA_PASSWORD":  "s3cret",
	})
	cfg, err := Load("server", []string{"--db", "kvdb://from-flag.db", "--seed", "seed.yaml"}, env)
	require.NoError(t, err)
	assert.Equal(t, "kvdb://from-flag.db", cfg.DB)
	assert.Equal(t, "seed.yaml", cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "editor", cfg.AdminUser)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
}

func TestLoadErrors(t *testing.T) {
	tt := []struct {
		name string
		args []string
	}{
		{name: "bad level", args: []string{"--log-level", "loud"}},
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "empty db", args: []string{"--db", ""}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load("server", tc.args, envMap(nil))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("GLOSSA_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("GLOSSA_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("GLOSSA_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(file, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("GLOSSA_TEST_DOTENV"))
}
