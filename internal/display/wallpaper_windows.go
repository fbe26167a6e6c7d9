//go:build windows

package display

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

var procSystemParametersInfoW = windows.NewLazySystemDLL("user32.dll").NewProc("SystemParametersInfoW")

// SetWallpaper writes the style to HKEY_CURRENT_USER\Control Panel\Desktop and
// asks the shell to load path as the desktop wallpaper.
func SetWallpaper(path, style string) error {
	wallpaperStyle, tile := "0", "0"
	switch style {
	case StyleTile:
		tile = "1"
	case StyleFill:
		wallpaperStyle = "10"
	case StyleCenter, "":
	default:
		return fmt.Errorf("unknown wallpaper style %q", style)
	}

	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	if err := k.SetStringValue("WallpaperStyle", wallpaperStyle); err != nil {
		return err
	}
	if err := k.SetStringValue("TileWallpaper", tile); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	p, err := windows.UTF16PtrFromString(abs)
	if err != nil {
		return err
	}
	r, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper, 0, uintptr(unsafe.Pointer(p)), spifUpdateIniFile|spifSendChange)
	if r == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", callErr)
	}
	return nil
}
