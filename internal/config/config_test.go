package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultIsImage, c.IsImage)
	assert.Equal(t, "xloadimage", c.ImgCmd)
	assert.Equal(t, ProbeAuto, c.ScreenProbe)
	assert.Len(t, c.Dirs, 1)
	assert.NotEmpty(t, c.StateDir)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "typo.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := Default()
	c.Dirs = []string{"/walls", "/more"}
	c.ImgCmd = "feh"
	c.Unseen = true
	p, err := Save(c)
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(p))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	body := "dirs:\n  - /a\n  - /b\nimgcmd: feh\nunseen: true\nstate_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))

	c, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, c.Dirs)
	assert.Equal(t, "feh", c.ImgCmd)
	assert.True(t, c.Unseen)
	assert.Equal(t, dir, c.StateDir)
}

func TestLoadFileTOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	body := "dirs = [\"/walls\"]\nrecursive = true\nscreen_probe = \"monitor\"\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))

	c, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"/walls"}, c.Dirs)
	assert.True(t, c.Recursive)
	assert.Equal(t, ProbeMonitor, c.ScreenProbe)
}

func TestLoadFileEnvOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("imgcmd: feh\n"), 0644))
	t.Setenv("MURALIS_IMGCMD", "hsetroot")
	t.Setenv("MURALIS_DIRS", "/x:/y")

	c, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hsetroot", c.ImgCmd)
	assert.Equal(t, []string{"/x", "/y"}, c.Dirs)
}

func TestLoadFileBadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("dirs: [unterminated\n"), 0644))

	_, err := LoadFile(p)
	assert.Error(t, err)
}
