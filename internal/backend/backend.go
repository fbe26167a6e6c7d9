// Package backend turns display options into the argument list of a root
// window image program, and runs it.
package backend

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/display"
	"github.com/rubykat/X11-Muralis/internal/policy"
)

// ErrUnknownBackend is returned for an id missing from the table.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend describes how one program expresses each display option.
// Empty rules mean the option is not supported and is dropped.
// Numeric rules are flag templates where %d is replaced by the value.
type Backend struct {
	// Program is the executable. Empty means the native setter (display.SetWallpaper).
	Program string
	Base    []string

	Tile       []string
	Fullscreen []string
	Center     []string
	Smooth     []string

	Colors []string
	Rotate []string
	Zoom   []string

	// Trailer goes after all options, right before the image path.
	Trailer []string

	// RequiresPlacement makes the tile flag the default when no placement applies.
	RequiresPlacement bool
	// Persistent programs keep running to hold the image; older instances are
	// terminated before a new one starts.
	Persistent bool
}

// Backends is the built-in table, keyed by the imgcmd id.
var Backends = map[string]Backend{
	"xloadimage": {
		Program:           "xloadimage",
		Base:              []string{"-onroot", "-quiet"},
		Tile:              []string{"-tile"},
		Fullscreen:        []string{"-fullscreen", "-border", "black"},
		Center:            []string{"-center"},
		Colors:            []string{"-colors", "%d"},
		Rotate:            []string{"-rotate", "%d"},
		Zoom:              []string{"-zoom", "%d"},
		RequiresPlacement: true,
	},
	"xsetbg": {
		Program:           "xsetbg",
		Base:              []string{"-quiet"},
		Tile:              []string{"-tile"},
		Fullscreen:        []string{"-fullscreen", "-border", "black"},
		Center:            []string{"-center"},
		Colors:            []string{"-colors", "%d"},
		Rotate:            []string{"-rotate", "%d"},
		Zoom:              []string{"-zoom", "%d"},
		RequiresPlacement: true,
	},
	"xv": {
		Program:    "xv",
		Base:       []string{"-root", "-quit"},
		Tile:       []string{"-rmode", "1"},
		Fullscreen: []string{"-maxpect"},
		Center:     []string{"-rmode", "5"},
		Smooth:     []string{"-smooth"},
		Colors:     []string{"-ncols", "%d"},
		Rotate:     []string{"-rotate", "%d"},
		Zoom:       []string{"-expand", "%d"},
	},
	"feh": {
		Program:           "feh",
		Base:              []string{"--no-fehbg"},
		Tile:              []string{"--bg-tile"},
		Fullscreen:        []string{"--bg-fill"},
		Center:            []string{"--bg-center"},
		RequiresPlacement: true,
	},
	"hsetroot": {
		Program:           "hsetroot",
		Tile:              []string{"-tile"},
		Fullscreen:        []string{"-fill"},
		Center:            []string{"-center"},
		RequiresPlacement: true,
	},
	"xwallpaper": {
		Program:           "xwallpaper",
		Tile:              []string{"--tile"},
		Fullscreen:        []string{"--zoom"},
		Center:            []string{"--center"},
		RequiresPlacement: true,
	},
	"swaybg": {
		Program:           "swaybg",
		Tile:              []string{"-m", "tile"},
		Fullscreen:        []string{"-m", "fill"},
		Center:            []string{"-m", "center"},
		Trailer:           []string{"-i"},
		RequiresPlacement: true,
		Persistent:        true,
	},
	"windows": {
		Tile:              []string{display.StyleTile},
		Fullscreen:        []string{display.StyleFill},
		Center:            []string{display.StyleCenter},
		RequiresPlacement: true,
	},
}

// Names returns the backend ids in sorted order.
func Names() []string {
	names := make([]string, 0, len(Backends))
	for name := range Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the backend for id.
func Lookup(id string) (Backend, error) {
	b, ok := Backends[id]
	if !ok {
		return Backend{}, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, id, strings.Join(Names(), ", "))
	}
	return b, nil
}

// Render returns the arguments for backend id, without the image path.
// Order: base, numeric options, smooth, one placement, trailer. When more than
// one placement is true, tile wins over fullscreen, and fullscreen over center.
func Render(id string, o policy.Options) ([]string, error) {
	b, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return b.Render(o), nil
}

// Render returns the arguments for b, without the image path.
func (b Backend) Render(o policy.Options) []string {
	args := append([]string{}, b.Base...)
	args = appendNum(args, b.Colors, o.Colors)
	args = appendNum(args, b.Rotate, o.Rotate)
	args = appendNum(args, b.Zoom, o.Zoom)
	if policy.IsSet(o.Smooth) {
		args = append(args, b.Smooth...)
	}
	args = append(args, b.placement(o)...)
	return append(args, b.Trailer...)
}

func (b Backend) placement(o policy.Options) []string {
	switch {
	case o.Tile && len(b.Tile) > 0:
		return b.Tile
	case policy.IsSet(o.Fullscreen) && len(b.Fullscreen) > 0:
		return b.Fullscreen
	case policy.IsSet(o.Center) && len(b.Center) > 0:
		return b.Center
	case b.RequiresPlacement:
		return b.Tile
	}
	return nil
}

func appendNum(args, tmpl []string, v *int) []string {
	if v == nil || len(tmpl) == 0 {
		return args
	}
	for _, t := range tmpl {
		args = append(args, strings.ReplaceAll(t, "%d", strconv.Itoa(*v)))
	}
	return args
}
