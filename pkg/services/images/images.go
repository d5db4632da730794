package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	// Decoders for the formats the PDF layer can embed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Bitmap is a fetched or captured image together with its native
// pixel dimensions, ready to be placed on a page.
type Bitmap struct {
	Ref    string
	Format string // "png", "jpeg" or "gif"
	Width  int
	Height int
	Data   []byte
}

// Acquirer resolves an image reference into a Bitmap. A non-nil error
// is the contained failure signal: callers degrade the corresponding
// block and continue, they never abort the document.
type Acquirer interface {
	Acquire(ctx context.Context, ref string) (*Bitmap, error)
}

// FromFile loads a local image, typically the configured watermark.
func FromFile(path string) (*Bitmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return FromBytes(path, data)
}

// FromBytes validates raw image bytes and reads back native
// dimensions without decoding the full pixel data.
func FromBytes(ref string, data []byte) (*Bitmap, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", ref, err)
	}
	switch format {
	case "png", "jpeg", "gif":
	default:
		return nil, fmt.Errorf("unsupported image format %q for %q", format, ref)
	}
	return &Bitmap{
		Ref:    ref,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}, nil
}
