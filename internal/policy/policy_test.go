package policy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rubykat/X11-Muralis/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hd = display.Geometry{Width: 1920, Height: 1080, Depth: 24}

func meta(w, h int) *display.Metadata {
	return &display.Metadata{Format: "png", Width: w, Height: h}
}

func TestResolveRules(t *testing.T) {
	tests := []struct {
		name                     string
		w, h                     int
		fullscreen, smooth, cent bool
	}{
		{"small square tile", 1000, 1000, false, false, false},
		{"exact screen", 1920, 1080, true, false, false},
		{"half-ish upscaled", 1000, 600, true, true, false},
		{"too short for fullscreen", 1900, 500, false, false, false},
		{"large square", 1400, 1400, true, false, false},
		{"square just over 0.7", 1345, 1345, true, false, false},
		{"tiny", 64, 64, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Resolve(meta(tt.w, tt.h), hd, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.fullscreen, *o.Fullscreen, "fullscreen")
			assert.Equal(t, tt.smooth, *o.Smooth, "smooth")
			assert.Equal(t, tt.cent, *o.Center, "center")
			assert.False(t, o.Tile)
		})
	}
}

func TestResolveSquareBoundary(t *testing.T) {
	tests := []struct {
		sw, w int
		want  bool
	}{
		{1000, 700, false},
		{1000, 701, true},
		{1440, 1008, false},
		{1440, 1009, true},
		{720, 504, false},
		{720, 505, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_on_%d", tt.w, tt.sw), func(t *testing.T) {
			o, err := Resolve(meta(tt.w, tt.w), display.Geometry{Width: tt.sw, Height: 900}, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *o.Fullscreen, "exactly 0.7 of the width is not fullscreen")
		})
	}
}

func TestResolveRatioBoundaries(t *testing.T) {
	screen := display.Geometry{Width: 1440, Height: 900}

	// Half the screen in one direction is not enough.
	o, err := Resolve(meta(720, 800), screen, Options{})
	require.NoError(t, err)
	assert.False(t, *o.Fullscreen)
	o, err = Resolve(meta(721, 451), screen, Options{})
	require.NoError(t, err)
	assert.True(t, *o.Fullscreen)

	// Smooth needs a side strictly below 0.6.
	o, err = Resolve(meta(864, 540), screen, Options{Fullscreen: Bool(true)})
	require.NoError(t, err)
	assert.False(t, *o.Smooth)
	o, err = Resolve(meta(863, 540), screen, Options{Fullscreen: Bool(true)})
	require.NoError(t, err)
	assert.True(t, *o.Smooth)

	// Center needs both sides strictly above 0.9.
	o, err = Resolve(meta(1296, 811), screen, Options{Fullscreen: Bool(false)})
	require.NoError(t, err)
	assert.False(t, *o.Center)
	o, err = Resolve(meta(1297, 811), screen, Options{Fullscreen: Bool(false)})
	require.NoError(t, err)
	assert.True(t, *o.Center)
}

func TestResolveCenter(t *testing.T) {
	// Anything above 0.9 in both directions is also fullscreen, so center only
	// comes out true when fullscreen was turned off by the user.
	screen := display.Geometry{Width: 1000, Height: 600}
	o, err := Resolve(meta(560, 560), screen, Options{Fullscreen: Bool(false)})
	require.NoError(t, err)
	assert.False(t, *o.Fullscreen)
	assert.False(t, *o.Center, "560 is not above 0.9*1000")

	o, err = Resolve(meta(950, 570), screen, Options{Fullscreen: Bool(false)})
	require.NoError(t, err)
	assert.True(t, *o.Center)
	assert.False(t, *o.Smooth)
}

func TestResolveSmoothOnlyWhenFullscreen(t *testing.T) {
	// Small non-square image forced out of fullscreen keeps smooth false.
	o, err := Resolve(meta(100, 50), hd, Options{Fullscreen: Bool(false)})
	require.NoError(t, err)
	assert.False(t, *o.Smooth)

	// Forced fullscreen evaluates smooth.
	o, err = Resolve(meta(100, 50), hd, Options{Fullscreen: Bool(true)})
	require.NoError(t, err)
	assert.True(t, *o.Smooth)
	assert.False(t, *o.Center)
}

func TestResolveOverridesUntouched(t *testing.T) {
	in := Options{
		Fullscreen: Bool(false),
		Center:     Bool(true),
		Tile:       true,
		Smooth:     Bool(true),
		Colors:     Int(16),
		Rotate:     Int(90),
		Zoom:       Int(150),
	}
	for _, m := range []*display.Metadata{nil, meta(1, 1), meta(1920, 1080), meta(5000, 5000)} {
		for _, s := range []display.Geometry{hd, {Width: 640, Height: 480}} {
			got, _ := Resolve(m, s, in)
			assert.Equal(t, in, got)
		}
	}
}

func TestResolveUnknownMetadata(t *testing.T) {
	o, err := Resolve(nil, hd, Options{Smooth: Bool(true)})
	assert.True(t, errors.Is(err, ErrMetadataUnknown))
	assert.False(t, *o.Fullscreen)
	assert.False(t, *o.Center)
	assert.True(t, *o.Smooth, "explicit override kept")
}

func TestOptionsString(t *testing.T) {
	o := Options{Fullscreen: Bool(true), Rotate: Int(90)}
	assert.Equal(t, "fullscreen=true tile=false rotate=90", o.String())
}
