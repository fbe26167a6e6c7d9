package display

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrMetadataProbeFailed is returned when an image header cannot be read.
// Callers treat it as a warning.
var ErrMetadataProbeFailed = errors.New("metadata probe failed")

// Metadata is what the policy needs to know about an image.
type Metadata struct {
	Format string
	Width  int
	Height int
}

// Square reports whether the image is as wide as it is tall.
func (m Metadata) Square() bool { return m.Width == m.Height }

// MetadataProber reads image metadata.
type MetadataProber interface {
	Probe(path string) (Metadata, error)
}

// HeaderProbe decodes only the image header (image.DecodeConfig).
type HeaderProbe struct{}

// Probe implements MetadataProber.
func (HeaderProbe) Probe(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMetadataProbeFailed, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %v", ErrMetadataProbeFailed, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Metadata{}, fmt.Errorf("%w: %s: invalid size %dx%d", ErrMetadataProbeFailed, path, cfg.Width, cfg.Height)
	}
	return Metadata{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
