//go:build !windows

package display

// SetWallpaper returns ErrUnsupported on non-Windows platforms.
func SetWallpaper(path, style string) error {
	return ErrUnsupported
}
