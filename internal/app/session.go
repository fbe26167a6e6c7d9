// Package app runs one selection-and-display cycle: pick an image, work out
// how to place it, run the backend, then update history and the unseen pool.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/rubykat/X11-Muralis/internal/backend"
	"github.com/rubykat/X11-Muralis/internal/catalog"
	"github.com/rubykat/X11-Muralis/internal/config"
	"github.com/rubykat/X11-Muralis/internal/display"
	"github.com/rubykat/X11-Muralis/internal/logger"
	"github.com/rubykat/X11-Muralis/internal/policy"
	"github.com/rubykat/X11-Muralis/internal/selector"
	"github.com/rubykat/X11-Muralis/internal/storage"
)

// Launcher runs a backend with rendered args and the image path.
type Launcher interface {
	Launch(id string, args []string, path string) error
}

// Request is what the user asked for on one run.
type Request struct {
	Mode      selector.Mode
	Match     string
	Exclude   string
	Overrides policy.Options
}

// Result describes a completed display.
type Result struct {
	Path     string
	Options  policy.Options
	Args     []string
	Warnings []error
}

// Session holds the per-run state shared by the components. Nothing here is
// safe for concurrent use.
type Session struct {
	ImgCmd   string
	Unseen   bool
	Catalog  *catalog.Catalog
	Pool     *storage.Pool
	History  *storage.History
	Screen   display.ScreenProbe
	Metadata display.MetadataProber
	Launcher Launcher
	// DryRun leaves history and the unseen pool untouched, since nothing
	// was displayed.
	DryRun bool

	screen display.Geometry
	probed bool
}

// New wires a Session from cfg with the real collaborators.
func New(cfg *config.Config, dryRun bool) (*Session, error) {
	if _, err := backend.Lookup(cfg.ImgCmd); err != nil {
		return nil, err
	}
	cat, err := catalog.New(cfg.Dirs, cfg.IsImage, catalog.DirLister{Recursive: cfg.Recursive})
	if err != nil {
		return nil, err
	}
	probe, err := display.NewScreenProbe(cfg.ScreenProbe)
	if err != nil {
		return nil, err
	}
	return &Session{
		ImgCmd:   cfg.ImgCmd,
		Unseen:   cfg.Unseen,
		Catalog:  cat,
		Pool:     storage.NewPool(cfg.StateDir),
		History:  storage.NewHistory(cfg.StateDir),
		Screen:   probe,
		Metadata: display.HeaderProbe{},
		Launcher: backend.Runner{DryRun: dryRun},
		DryRun:   dryRun,
	}, nil
}

func (s *Session) selector(req Request) *selector.Selector {
	return &selector.Selector{
		Source:  s.Catalog,
		Pool:    s.Pool,
		History: s.History,
		Unseen:  s.Unseen,
		Match:   req.Match,
		Exclude: req.Exclude,
	}
}

// ScreenGeometry probes the screen once and returns the cached value after that.
func (s *Session) ScreenGeometry() (display.Geometry, error) {
	if s.probed {
		return s.screen, nil
	}
	g, err := s.Screen.Screen()
	if err != nil {
		return display.Geometry{}, err
	}
	logger.Debug("screen geometry", "geometry", g.String())
	s.screen, s.probed = g, true
	return g, nil
}

// List writes the filtered candidates to w.
func (s *Session) List(w io.Writer, req Request, format string) error {
	paths, err := s.selector(req).Candidates()
	if err != nil {
		return err
	}
	return catalog.WriteList(w, paths, format)
}

// Show selects an image and displays it. Selection, directory and screen
// failures are returned as errors and nothing is displayed. Metadata,
// backend exit status and persistence problems are reported in
// Result.Warnings.
func (s *Session) Show(req Request) (*Result, error) {
	path, err := s.selector(req).Select(req.Mode)
	if err != nil {
		return nil, err
	}
	logger.Info("selected image", "path", path, "mode", req.Mode.String())

	res := &Result{Path: path}
	warn := func(err error) {
		logger.Warn(err.Error())
		res.Warnings = append(res.Warnings, err)
	}

	var meta *display.Metadata
	if m, err := s.Metadata.Probe(path); err != nil {
		warn(err)
	} else {
		meta = &m
		logger.Debug("image metadata", "format", m.Format, "width", m.Width, "height", m.Height)
	}

	screen, err := s.ScreenGeometry()
	if err != nil {
		return nil, err
	}

	opts, err := policy.Resolve(meta, screen, req.Overrides)
	if err != nil && !errors.Is(err, policy.ErrMetadataUnknown) {
		return nil, err
	}
	res.Options = opts
	logger.Debug("display options", "options", opts.String())

	args, err := backend.Render(s.ImgCmd, opts)
	if err != nil {
		return nil, err
	}
	res.Args = args

	if err := s.Launcher.Launch(s.ImgCmd, args, path); err != nil {
		if !errors.Is(err, backend.ErrBackendFailed) {
			return nil, err
		}
		warn(err)
	}

	if s.DryRun {
		logger.Debug("dry run, state not updated", "path", path)
		return res, nil
	}
	if err := s.History.Record(path); err != nil {
		warn(fmt.Errorf("history: %w", err))
	}
	if s.Unseen {
		if err := s.Pool.Remove(path); err != nil {
			warn(fmt.Errorf("unseen pool: %w", err))
		}
	}
	return res, nil
}
