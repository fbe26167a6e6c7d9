package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/app"
	"github.com/rubykat/X11-Muralis/internal/catalog"
	"github.com/rubykat/X11-Muralis/internal/config"
	"github.com/rubykat/X11-Muralis/internal/policy"
	"github.com/rubykat/X11-Muralis/internal/selector"
)

var errHelp = flag.ErrHelp

// triBool is a flag that sets a tri-state option to a fixed value when given.
type triBool struct {
	dst **bool
	val bool
}

func (t triBool) String() string { return "" }

func (t triBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	// -no-x=false means x.
	if !v {
		t.val = !t.val
	}
	*t.dst = policy.Bool(t.val)
	return nil
}

func (t triBool) IsBoolFlag() bool { return true }

// optInt is an integer flag that stays nil unless given.
type optInt struct{ dst **int }

func (o optInt) String() string { return "" }

func (o optInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*o.dst = policy.Int(n)
	return nil
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type options struct {
	configPath   string
	random       bool
	nth          int
	nthSet       bool
	repeatLast   bool
	explicit     string
	match        string
	exclude      string
	overrides    policy.Options
	unseen       bool
	list         bool
	listFormat   string
	outfile      string
	imgcmd       string
	dirs         stringList
	recursive    bool
	dryRun       bool
	verbose      bool
	showVersion  bool
	listBackends bool
	writeConfig  bool
}

func parseArgs(argv []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("muralis", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "Path to configuration file (default: <user config dir>/muralis/config.yaml)")
	fs.BoolVar(&o.random, "random", false, "Display a random image (default mode)")
	fs.IntVar(&o.nth, "nth", 0, "Display the Nth image of the candidate list (1-based)")
	fs.BoolVar(&o.repeatLast, "repeat_last", false, "Display the last displayed image again")
	fs.StringVar(&o.match, "match", "", "Only consider images whose path matches this pattern")
	fs.StringVar(&o.exclude, "exclude", "", "Skip images whose path matches this pattern")

	fs.Var(triBool{&o.overrides.Fullscreen, true}, "fullscreen", "Scale the image to fill the screen")
	fs.Var(triBool{&o.overrides.Fullscreen, false}, "no-fullscreen", "Never scale the image to fill the screen")
	fs.Var(triBool{&o.overrides.Center, true}, "center", "Center the image")
	fs.Var(triBool{&o.overrides.Center, false}, "no-center", "Do not center the image")
	fs.Var(triBool{&o.overrides.Smooth, true}, "smooth", "Smooth the scaled image (xv)")
	fs.Var(triBool{&o.overrides.Smooth, false}, "no-smooth", "Do not smooth the scaled image")
	fs.BoolVar(&o.overrides.Tile, "tile", false, "Tile the image")
	fs.Var(optInt{&o.overrides.Colors}, "colors", "Limit the image to N colors")
	fs.Var(optInt{&o.overrides.Rotate}, "rotate", "Rotate the image by N degrees")
	fs.Var(optInt{&o.overrides.Zoom}, "zoom", "Zoom the image by N percent")

	fs.BoolVar(&o.unseen, "unseen", false, "Only pick images not shown in the current rotation")
	fs.BoolVar(&o.list, "list", false, "List the candidate images instead of displaying one")
	fs.StringVar(&o.listFormat, "listformat", catalog.FormatNormal, "List format: normal or fullname")
	fs.StringVar(&o.outfile, "outfile", "", "Write the -list output to this file")
	fs.StringVar(&o.imgcmd, "imgcmd", "", "Backend program (see -backends)")
	fs.Var(&o.dirs, "dir", "Image directory (repeatable, replaces configured dirs)")
	fs.BoolVar(&o.recursive, "recursive", false, "Descend into subdirectories")
	fs.BoolVar(&o.dryRun, "n", false, "Select and log the command without running it")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable verbose logging and print the chosen image")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.listBackends, "backends", false, "List the known backends and exit")
	fs.BoolVar(&o.writeConfig, "write-config", false, "Save the effective configuration to the user config dir and exit")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "nth" {
			o.nthSet = true
		}
	})
	switch fs.NArg() {
	case 0:
	case 1:
		o.explicit = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one image argument, got %d", fs.NArg())
	}

	modes := 0
	for _, set := range []bool{o.random, o.nthSet, o.repeatLast, o.explicit != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("-random, -nth, -repeat_last and an image argument are mutually exclusive")
	}
	if o.listFormat != catalog.FormatNormal && o.listFormat != catalog.FormatFullname {
		return nil, fmt.Errorf("unknown -listformat %q (normal or fullname)", o.listFormat)
	}
	return o, nil
}

// apply lets command line values win over the config file.
func (o *options) apply(cfg *config.Config) {
	if len(o.dirs) > 0 {
		cfg.Dirs = o.dirs
	}
	if o.recursive {
		cfg.Recursive = true
	}
	if o.unseen {
		cfg.Unseen = true
	}
	if o.imgcmd != "" {
		cfg.ImgCmd = o.imgcmd
	}
}

func (o *options) request() app.Request {
	req := app.Request{
		Match:     o.match,
		Exclude:   o.exclude,
		Overrides: o.overrides,
		Mode:      selector.Random(),
	}
	switch {
	case o.explicit != "":
		req.Mode = selector.Explicit(o.explicit)
	case o.repeatLast:
		req.Mode = selector.RepeatLast()
	case o.nthSet:
		req.Mode = selector.Nth(o.nth)
	}
	return req
}
