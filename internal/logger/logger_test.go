package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apptrack.log")
	l, err := New(Config{Level: "info", Format: "json", Output: "file", Filename: path})
	require.NoError(t, err)

	l.WithComponent("store").Infow("snapshot saved", "applications", 3)
	l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"component":"store"`)
	assert.Contains(t, string(b), `"applications":3`)
}

func TestNop_DoesNotPanic(t *testing.T) {
	Nop().WithFields("k", "v").Debugw("ignored")
}
