package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "interior.log")

	l, err := New(path, "info")
	require.NoError(t, err)
	l.Named("session").Info("loaded", zap.String("projectId", "p1"))
	l.Debug("hidden")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"message":"loaded"`)
	assert.Contains(t, out, `"projectId":"p1"`)
	assert.Contains(t, out, `"logger":"session"`)
	assert.False(t, strings.Contains(out, "hidden"), "debug lines must be filtered at info level")
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("  ", "info")
	require.NoError(t, err)
	l.Info("nowhere")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}
