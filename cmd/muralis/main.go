// muralis picks an image from the configured directories and displays it on
// the root window through an external image program.
//
// Usage:
//
//	muralis [flags] [image]
//
// With an image argument, that file (or the first catalog entry whose path
// contains it) is displayed. Otherwise one of -random (default), -nth N or
// -repeat_last picks the image.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rubykat/X11-Muralis/internal/app"
	"github.com/rubykat/X11-Muralis/internal/backend"
	"github.com/rubykat/X11-Muralis/internal/config"
	"github.com/rubykat/X11-Muralis/internal/logger"
)

var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(argv, stderr)
	if errors.Is(err, errHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "muralis: %v\n", err)
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "muralis %s\n", version)
		return 0
	}
	if opts.listBackends {
		for _, name := range backend.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	var cfg *config.Config
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(stderr, "muralis: failed to load config: %v\n", err)
		return 1
	}
	opts.apply(cfg)

	if opts.writeConfig {
		p, err := config.Save(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "muralis: failed to save config: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, p)
		return 0
	}

	logger.Init(cfg.StateDir)
	defer logger.Close()
	logger.SetVerbose(opts.verbose)

	s, err := app.New(cfg, opts.dryRun)
	if err != nil {
		logger.Error("setup failed", "err", err)
		return 1
	}

	if opts.list {
		if err := writeList(s, opts, stdout); err != nil {
			logger.Error("list failed", "err", err)
			return 1
		}
		return 0
	}

	res, err := s.Show(opts.request())
	if err != nil {
		logger.Error("no image displayed", "err", err)
		return 1
	}
	if logger.IsDebug() {
		fmt.Fprintln(stdout, res.Path)
	}
	return 0
}

func writeList(s *app.Session, opts *options, stdout io.Writer) error {
	if opts.outfile == "" {
		return s.List(stdout, opts.request(), opts.listFormat)
	}
	f, err := os.Create(opts.outfile)
	if err != nil {
		return err
	}
	if err := s.List(f, opts.request(), opts.listFormat); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
