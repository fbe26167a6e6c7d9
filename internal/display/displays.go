package display

import (
	"fmt"

	"github.com/kbinani/screenshot"

	"github.com/rubykat/X11-Muralis/internal/logger"
)

// Display represents a physical monitor (from OS).
type Display struct {
	Index   int
	ID      string
	Width   int
	Height  int
	Primary bool
}

// List returns currently connected displays. ID is "display-0", "display-1", ...
func List() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, nil
	}
	out := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		out = append(out, Display{
			Index:   i,
			ID:      fmt.Sprintf("display-%d", i),
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			Primary: i == 0,
		})
	}
	return out, nil
}

// MonitorProbe reads the primary display bounds. The depth is not available
// this way and is reported as 0.
type MonitorProbe struct {
	// list defaults to List; replaced in tests.
	list func() ([]Display, error)
}

// Screen implements ScreenProbe.
func (p MonitorProbe) Screen() (Geometry, error) {
	list := p.list
	if list == nil {
		list = List
	}
	displays, err := list()
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %v", ErrScreenProbeFailed, err)
	}
	for _, d := range displays {
		if d.Primary && d.Width > 0 && d.Height > 0 {
			logger.Debug("monitor probe", "display", d.ID, "index", d.Index, "width", d.Width, "height", d.Height)
			return Geometry{Width: d.Width, Height: d.Height}, nil
		}
	}
	return Geometry{}, fmt.Errorf("%w: no active display", ErrScreenProbeFailed)
}
