// Package storage persists the unseen pool and the last-shown history as
// plain text files in the state directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names under the state directory.
const (
	UnseenFile = "unseen"
	LastFile   = "last"
)

var (
	// ErrPersist wraps failures to create the state directory or write a file.
	ErrPersist = errors.New("persist")
	// ErrPoolEmpty means the unseen pool must be rebuilt.
	ErrPoolEmpty = errors.New("unseen pool empty")
	// ErrHistoryEmpty means nothing has been displayed yet.
	ErrHistoryEmpty = errors.New("no history")
)

// EnsureDir creates dir if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersist, dir, err)
	}
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %v", ErrPersist, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %v", ErrPersist, path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %v", ErrPersist, path, err)
	}
	return nil
}

// readLines returns the non-empty lines of path.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Pool is the persisted set of images not yet shown in the current rotation.
type Pool struct {
	path string
}

// NewPool returns the pool stored at dir/unseen.
func NewPool(dir string) *Pool {
	return &Pool{path: filepath.Join(dir, UnseenFile)}
}

// Path returns the pool file path.
func (p *Pool) Path() string { return p.path }

// Load returns the pool entries verbatim. An empty pool file is deleted.
// Both the empty and the missing file report ErrPoolEmpty.
func (p *Pool) Load() ([]string, error) {
	lines, err := readLines(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrPoolEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	if len(lines) == 0 {
		if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: remove %s: %v", ErrPersist, p.path, err)
		}
		return nil, ErrPoolEmpty
	}
	return lines, nil
}

// Rebuild replaces the pool with candidates.
func (p *Pool) Rebuild(candidates []string) error {
	return writeAtomic(p.path, joinLines(candidates))
}

// Remove rereads the pool file and writes back every entry except shown.
// A missing pool is left missing.
func (p *Pool) Remove(shown string) error {
	lines, err := p.Load()
	if errors.Is(err, ErrPoolEmpty) {
		return nil
	}
	if err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l != shown {
			kept = append(kept, l)
		}
	}
	return writeAtomic(p.path, joinLines(kept))
}

// History stores the most recently displayed image.
type History struct {
	path string
}

// NewHistory returns the history stored at dir/last.
func NewHistory(dir string) *History {
	return &History{path: filepath.Join(dir, LastFile)}
}

// Record overwrites the history with path.
func (h *History) Record(path string) error {
	return writeAtomic(h.path, []byte(path+"\n"))
}

// Read returns the last displayed path, or ErrHistoryEmpty.
func (h *History) Read() (string, error) {
	lines, err := readLines(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrHistoryEmpty
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", h.path, err)
	}
	if len(lines) == 0 {
		return "", ErrHistoryEmpty
	}
	return lines[0], nil
}
