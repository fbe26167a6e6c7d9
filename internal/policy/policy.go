// Package policy decides how an image is placed on the root window from its
// size relative to the screen. Fields the user set explicitly are kept as is.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/display"
)

// ErrMetadataUnknown is returned alongside safe defaults when no image
// metadata was available.
var ErrMetadataUnknown = errors.New("image metadata unknown, using defaults")

// Options are the display instructions. A nil pointer means unset.
type Options struct {
	Fullscreen *bool
	Center     *bool
	Tile       bool
	Smooth     *bool
	Colors     *int
	Rotate     *int
	Zoom       *int
}

// Bool returns a pointer to v, for filling Options.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for filling Options.
func Int(v int) *int { return &v }

// IsSet reports whether b is set and true.
func IsSet(b *bool) bool { return b != nil && *b }

func (o Options) String() string {
	var parts []string
	tri := func(name string, b *bool) {
		if b != nil {
			parts = append(parts, fmt.Sprintf("%s=%t", name, *b))
		}
	}
	num := func(name string, n *int) {
		if n != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", name, *n))
		}
	}
	tri("fullscreen", o.Fullscreen)
	tri("center", o.Center)
	parts = append(parts, fmt.Sprintf("tile=%t", o.Tile))
	tri("smooth", o.Smooth)
	num("colors", o.Colors)
	num("rotate", o.Rotate)
	num("zoom", o.Zoom)
	return strings.Join(parts, " ")
}

// Resolve fills the unset tri-state fields of overrides from the image and
// screen geometry. meta nil means the image could not be probed: the unset
// fields become false and ErrMetadataUnknown is returned with the options.
//
// fullscreen: square images when wider than 0.7 of the screen, other images
// when larger than half the screen in both directions.
// smooth (fullscreen only): either side below 0.6 of the screen.
// center (not fullscreen): both sides above 0.9 of the screen.
func Resolve(meta *display.Metadata, screen display.Geometry, overrides Options) (Options, error) {
	o := overrides
	if meta == nil || meta.Width <= 0 || meta.Height <= 0 {
		for _, f := range []**bool{&o.Fullscreen, &o.Smooth, &o.Center} {
			if *f == nil {
				*f = Bool(false)
			}
		}
		return o, ErrMetadataUnknown
	}

	// Ratios are compared in integer arithmetic so an image exactly at a
	// threshold never lands on the wrong side through float rounding.
	w, h := meta.Width, meta.Height
	sw, sh := screen.Width, screen.Height

	if o.Fullscreen == nil {
		var full bool
		if meta.Square() {
			full = 10*w > 7*sw
		} else {
			full = 2*w > sw && 2*h > sh
		}
		o.Fullscreen = Bool(full)
	}
	if *o.Fullscreen {
		if o.Smooth == nil {
			o.Smooth = Bool(10*w < 6*sw || 10*h < 6*sh)
		}
	} else if o.Center == nil {
		o.Center = Bool(10*w > 9*sw && 10*h > 9*sh)
	}
	if o.Smooth == nil {
		o.Smooth = Bool(false)
	}
	if o.Center == nil {
		o.Center = Bool(false)
	}
	return o, nil
}
