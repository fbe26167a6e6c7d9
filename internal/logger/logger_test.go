package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerboseToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	t.Cleanup(func() { SetVerbose(false) })

	Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	SetVerbose(true)
	assert.True(t, IsDebug())
	Debug("shown", "path", "/a.png")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "path=/a.png")
}

func TestInitDebugFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MURALIS_DEBUG", "1")
	Init(dir)
	t.Cleanup(func() {
		Close()
		debug = false
		SetVerbose(false)
	})

	Warn("to file", "n", 1)
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "muralis-debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
