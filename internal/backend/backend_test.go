package backend

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/rubykat/X11-Muralis/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		opts    policy.Options
		want    []string
	}{
		{
			name:    "nothing set falls back to tile",
			backend: "xloadimage",
			opts:    policy.Options{Fullscreen: policy.Bool(false), Center: policy.Bool(false), Smooth: policy.Bool(false)},
			want:    []string{"-onroot", "-quiet", "-tile"},
		},
		{
			name:    "fullscreen adds border",
			backend: "xsetbg",
			opts:    policy.Options{Fullscreen: policy.Bool(true)},
			want:    []string{"-quiet", "-fullscreen", "-border", "black"},
		},
		{
			name:    "numeric flags",
			backend: "xloadimage",
			opts:    policy.Options{Center: policy.Bool(true), Colors: policy.Int(64), Rotate: policy.Int(90), Zoom: policy.Int(200)},
			want:    []string{"-onroot", "-quiet", "-colors", "64", "-rotate", "90", "-zoom", "200", "-center"},
		},
		{
			name:    "smooth only on xv",
			backend: "xv",
			opts:    policy.Options{Fullscreen: policy.Bool(true), Smooth: policy.Bool(true)},
			want:    []string{"-root", "-quit", "-smooth", "-maxpect"},
		},
		{
			name:    "smooth dropped on feh",
			backend: "feh",
			opts:    policy.Options{Fullscreen: policy.Bool(true), Smooth: policy.Bool(true), Rotate: policy.Int(90)},
			want:    []string{"--no-fehbg", "--bg-fill"},
		},
		{
			name:    "xv needs no placement",
			backend: "xv",
			opts:    policy.Options{},
			want:    []string{"-root", "-quit"},
		},
		{
			name:    "tile wins over fullscreen",
			backend: "hsetroot",
			opts:    policy.Options{Tile: true, Fullscreen: policy.Bool(true), Center: policy.Bool(true)},
			want:    []string{"-tile"},
		},
		{
			name:    "fullscreen wins over center",
			backend: "xwallpaper",
			opts:    policy.Options{Fullscreen: policy.Bool(true), Center: policy.Bool(true)},
			want:    []string{"--zoom"},
		},
		{
			name:    "trailer precedes path",
			backend: "swaybg",
			opts:    policy.Options{Center: policy.Bool(true)},
			want:    []string{"-m", "center", "-i"},
		},
		{
			name:    "native style",
			backend: "windows",
			opts:    policy.Options{Fullscreen: policy.Bool(true)},
			want:    []string{"fill"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.backend, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnknown(t *testing.T) {
	_, err := Render("xsetroot-9000", policy.Options{})
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestRenderDoesNotAliasTable(t *testing.T) {
	args, err := Render("xloadimage", policy.Options{})
	require.NoError(t, err)
	args[0] = "mutated"
	assert.Equal(t, "-onroot", Backends["xloadimage"].Base[0])
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(Backends))
	assert.IsIncreasing(t, names)
}

func withBackend(t *testing.T, id string, b Backend) {
	t.Helper()
	Backends[id] = b
	t.Cleanup(func() { delete(Backends, id) })
}

func TestLaunch(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	withBackend(t, "test-true", Backend{Program: "true"})
	withBackend(t, "test-false", Backend{Program: "false"})

	assert.NoError(t, Runner{}.Launch("test-true", []string{"-x"}, "/w/a.png"))

	err := Runner{}.Launch("test-false", nil, "/w/a.png")
	assert.True(t, errors.Is(err, ErrBackendFailed))

	assert.NoError(t, Runner{DryRun: true}.Launch("test-false", nil, "/w/a.png"))

	err = Runner{}.Launch("nope", nil, "/w/a.png")
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestLaunchMissingProgram(t *testing.T) {
	withBackend(t, "test-missing", Backend{Program: "muralis-no-such-program"})
	err := Runner{}.Launch("test-missing", nil, "/w/a.png")
	assert.True(t, errors.Is(err, ErrBackendFailed))
}
