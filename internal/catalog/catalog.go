// Package catalog enumerates candidate wallpaper images from the configured
// directories and filters them by match/exclude patterns.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/logger"
)

// ErrDirectoryUnreadable is returned when a configured directory cannot be listed.
var ErrDirectoryUnreadable = errors.New("directory unreadable")

// Lister lists the file names of one directory. Names may contain path
// separators when the lister descends into subdirectories.
type Lister interface {
	List(dir string) ([]string, error)
}

// DirLister lists regular files with os.ReadDir. Hidden files are skipped.
type DirLister struct {
	// Recursive descends into subdirectories (hidden ones excepted).
	Recursive bool
}

// List implements Lister.
func (l DirLister) List(dir string) ([]string, error) {
	if !l.Recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if e.Type()&fs.ModeSymlink != 0 {
				fi, err := os.Stat(filepath.Join(dir, e.Name()))
				if err != nil || !fi.Mode().IsRegular() {
					continue
				}
			} else if !e.Type().IsRegular() {
				continue
			}
			names = append(names, e.Name())
		}
		return names, nil
	}

	var names []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	return names, err
}

// Catalog is the per-run list of candidate images. The first successful
// Candidates call is cached for the life of the Catalog.
type Catalog struct {
	dirs    []string
	isImage *regexp.Regexp
	lister  Lister

	cached []string
	loaded bool
}

// New returns a Catalog over dirs. isImage is a regular expression matched
// against file names.
func New(dirs []string, isImage string, lister Lister) (*Catalog, error) {
	re, err := regexp.Compile(isImage)
	if err != nil {
		return nil, fmt.Errorf("is_image pattern: %w", err)
	}
	if lister == nil {
		lister = DirLister{}
	}
	return &Catalog{dirs: dirs, isImage: re, lister: lister}, nil
}

// Candidates returns every image path in directory order. Any unreadable
// directory aborts the build.
func (c *Catalog) Candidates() ([]string, error) {
	if c.loaded {
		return c.cached, nil
	}
	var out []string
	for _, dir := range c.dirs {
		names, err := c.lister.List(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, dir, err)
		}
		n := 0
		for _, name := range names {
			if !c.isImage.MatchString(filepath.Base(name)) {
				continue
			}
			out = append(out, filepath.Join(dir, name))
			n++
		}
		logger.Debug("catalog dir scanned", "dir", dir, "images", n)
	}
	c.cached = out
	c.loaded = true
	return out, nil
}

// Filter keeps paths that match match (when set) and do not match exclude (when set).
func Filter(paths []string, match, exclude string) []string {
	if match == "" && exclude == "" {
		return paths
	}
	keep := newMatcher(match)
	drop := newMatcher(exclude)
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if keep != nil && !keep(p) {
			continue
		}
		if drop != nil && drop(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// newMatcher compiles pattern as a regular expression, falling back to a
// plain substring test when it does not compile. Empty pattern returns nil.
func newMatcher(pattern string) func(string) bool {
	if pattern == "" {
		return nil
	}
	if re, err := regexp.Compile(pattern); err == nil {
		return re.MatchString
	}
	return func(s string) bool { return strings.Contains(s, pattern) }
}
