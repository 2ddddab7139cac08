package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("INTERIOR_CONFIG_DIR", dir)
	for _, k := range []string{"INTERIOR_API_BASE", "INTERIOR_HTTP_TIMEOUT", "INTERIOR_MAX_UPLOAD_MB", "INTERIOR_LOG_FILE", "INTERIOR_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.EqualValues(t, 50*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, filepath.Join(dir, "interior.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("INTERIOR_API_BASE", "http://localhost:4000/api/")
	t.Setenv("INTERIOR_HTTP_TIMEOUT", "5s")
	t.Setenv("INTERIOR_MAX_UPLOAD_MB", "2")
	t.Setenv("INTERIOR_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.EqualValues(t, 2*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad url":      {"INTERIOR_API_BASE", "not a url"},
		"bad timeout":  {"INTERIOR_HTTP_TIMEOUT", "soon"},
		"zero upload":  {"INTERIOR_MAX_UPLOAD_MB", "0"},
		"bad level":    {"INTERIOR_LOG_LEVEL", "loud"},
		"upload words": {"INTERIOR_MAX_UPLOAD_MB", "lots"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
