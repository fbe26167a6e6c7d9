package display

import "errors"

// ErrUnsupported is returned by SetWallpaper on platforms without a native setter.
var ErrUnsupported = errors.New("native wallpaper setter not supported on this platform")

// Native wallpaper styles understood by SetWallpaper.
const (
	StyleTile   = "tile"
	StyleCenter = "center"
	StyleFill   = "fill"
)
