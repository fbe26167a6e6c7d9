// Package selector picks the one image to display: a random or numbered
// candidate, the last one shown, or an explicitly named file.
package selector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rubykat/X11-Muralis/internal/catalog"
	"github.com/rubykat/X11-Muralis/internal/logger"
	"github.com/rubykat/X11-Muralis/internal/storage"
)

var (
	// ErrNoCandidates means the filtered candidate list is empty.
	ErrNoCandidates = errors.New("no candidate images")
	// ErrIndexOutOfRange means Nth asked for more images than there are.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoHistory means RepeatLast found no recorded image.
	ErrNoHistory = errors.New("no previously displayed image")
	// ErrNotFound means Explicit matched neither a file nor a catalog entry.
	ErrNotFound = errors.New("image not found")
)

// Kind identifies a selection mode.
type Kind int

const (
	KindRandom Kind = iota
	KindNth
	KindRepeatLast
	KindExplicit
)

// Mode is a selection request. Build one with Random, Nth, RepeatLast or Explicit.
type Mode struct {
	Kind Kind
	N    int
	Path string
}

// Random picks uniformly among the candidates.
func Random() Mode { return Mode{Kind: KindRandom} }

// Nth picks the nth candidate, counting from 1. Values below 1 mean 1.
func Nth(n int) Mode { return Mode{Kind: KindNth, N: n} }

// RepeatLast picks the image recorded in history.
func RepeatLast() Mode { return Mode{Kind: KindRepeatLast} }

// Explicit picks path itself when it is a file, otherwise the first
// candidate whose path contains it.
func Explicit(path string) Mode { return Mode{Kind: KindExplicit, Path: path} }

func (m Mode) String() string {
	switch m.Kind {
	case KindNth:
		return fmt.Sprintf("nth(%d)", m.N)
	case KindRepeatLast:
		return "repeat-last"
	case KindExplicit:
		return fmt.Sprintf("explicit(%s)", m.Path)
	default:
		return "random"
	}
}

// Source supplies the unfiltered image catalog.
type Source interface {
	Candidates() ([]string, error)
}

// Selector resolves a Mode to a path.
type Selector struct {
	Source  Source
	Pool    *storage.Pool
	History *storage.History

	// Unseen draws candidates from the pool instead of the full catalog.
	Unseen  bool
	Match   string
	Exclude string

	// Rand defaults to the global math/rand/v2 source.
	Rand *rand.Rand
}

// Select returns the image path for m.
func (s *Selector) Select(m Mode) (string, error) {
	logger.Debug("select", "mode", m.String(), "unseen", s.Unseen, "match", s.Match, "exclude", s.Exclude)
	switch m.Kind {
	case KindRandom:
		return s.random()
	case KindNth:
		return s.nth(m.N)
	case KindRepeatLast:
		return s.repeatLast()
	case KindExplicit:
		return s.explicit(m.Path)
	default:
		return "", fmt.Errorf("unknown selection mode %d", m.Kind)
	}
}

// Candidates returns the filtered candidate list: the unseen pool when
// Unseen is set (rebuilding it from the unfiltered catalog when empty),
// else the catalog.
func (s *Selector) Candidates() ([]string, error) {
	var all []string
	var err error
	if s.Unseen {
		all, err = s.unseen()
	} else {
		all, err = s.Source.Candidates()
	}
	if err != nil {
		return nil, err
	}
	return catalog.Filter(all, s.Match, s.Exclude), nil
}

func (s *Selector) unseen() ([]string, error) {
	lines, err := s.Pool.Load()
	if err == nil {
		return lines, nil
	}
	if !errors.Is(err, storage.ErrPoolEmpty) {
		return nil, err
	}
	all, err := s.Source.Candidates()
	if err != nil {
		return nil, err
	}
	logger.Info("rebuilding unseen pool", "path", s.Pool.Path(), "images", len(all))
	if err := s.Pool.Rebuild(all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Selector) nth(n int) (string, error) {
	paths, err := s.Candidates()
	if err != nil {
		return "", err
	}
	return pick(paths, n)
}

// pick returns the 1-based nth entry. n <= 0 is treated as 1.
func pick(paths []string, n int) (string, error) {
	if n <= 0 {
		n = 1
	}
	if n > len(paths) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, n, len(paths))
	}
	return paths[n-1], nil
}

func (s *Selector) random() (string, error) {
	paths, err := s.Candidates()
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", ErrNoCandidates
	}
	var n int
	if s.Rand != nil {
		n = s.Rand.IntN(len(paths)) + 1
	} else {
		n = rand.IntN(len(paths)) + 1
	}
	return pick(paths, n)
}

func (s *Selector) repeatLast() (string, error) {
	last, err := s.History.Read()
	if errors.Is(err, storage.ErrHistoryEmpty) {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", err
	}
	return last, nil
}

func (s *Selector) explicit(name string) (string, error) {
	if isFile(name) {
		return name, nil
	}
	all, err := s.Source.Candidates()
	if err != nil {
		return "", err
	}
	for _, p := range catalog.Filter(all, s.Match, s.Exclude) {
		if strings.Contains(p, name) && isFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
