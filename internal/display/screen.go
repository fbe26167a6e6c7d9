package display

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/logger"
)

// ErrScreenProbeFailed is returned when the root window geometry cannot be read.
var ErrScreenProbeFailed = errors.New("screen probe failed")

// Geometry is the size of the root window. Depth 0 means unknown.
type Geometry struct {
	Width  int
	Height int
	Depth  int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Width, g.Height, g.Depth)
}

// ScreenProbe reports the root window geometry.
type ScreenProbe interface {
	Screen() (Geometry, error)
}

// XWinInfoProbe runs `xwininfo -root` and parses its Width, Height and Depth lines.
type XWinInfoProbe struct {
	// Command defaults to "xwininfo".
	Command string
}

// Screen implements ScreenProbe.
func (p XWinInfoProbe) Screen() (Geometry, error) {
	name := p.Command
	if name == "" {
		name = "xwininfo"
	}
	out, err := exec.Command(name, "-root").Output()
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %s: %v", ErrScreenProbeFailed, name, err)
	}
	return parseXWinInfo(out)
}

func parseXWinInfo(out []byte) (Geometry, error) {
	var g Geometry
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			continue
		}
		switch key {
		case "Width":
			g.Width = n
		case "Height":
			g.Height = n
		case "Depth":
			g.Depth = n
		}
	}
	if g.Width <= 0 || g.Height <= 0 {
		return Geometry{}, fmt.Errorf("%w: no root geometry in xwininfo output", ErrScreenProbeFailed)
	}
	return g, nil
}

// AutoProbe tries each probe in order and returns the first success.
type AutoProbe []ScreenProbe

// Screen implements ScreenProbe.
func (a AutoProbe) Screen() (Geometry, error) {
	var errs []error
	for _, p := range a {
		g, err := p.Screen()
		if err == nil {
			return g, nil
		}
		logger.Debug("screen probe failed, trying next", "err", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Geometry{}, fmt.Errorf("%w: no probes configured", ErrScreenProbeFailed)
	}
	return Geometry{}, errors.Join(errs...)
}

// NewScreenProbe returns the probe named by the config value (auto, xwininfo or monitor).
func NewScreenProbe(name string) (ScreenProbe, error) {
	switch name {
	case "", "auto":
		return AutoProbe{XWinInfoProbe{}, MonitorProbe{}}, nil
	case "xwininfo":
		return XWinInfoProbe{}, nil
	case "monitor":
		return MonitorProbe{}, nil
	default:
		return nil, fmt.Errorf("unknown screen probe %q", name)
	}
}
