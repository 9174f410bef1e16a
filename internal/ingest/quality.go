package ingest

import (
	"fmt"
	"image/png"
	"os"
)

const (
	// minDimension is the smallest width/height usable for text extraction.
	minDimension = 800

	// minFileSize guards against near-blank renders; a real 300 DPI
	// transcript page compresses to well over 50KB.
	minFileSize = 50 * 1024
)

// ValidateImageQuality checks that a rendered page image is plausibly
// readable by the vision model. Returns an error describing the first
// failed threshold.
func ValidateImageQuality(imagePath string) error {
	info, err := os.Stat(imagePath)
	if err != nil {
		return fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() < minFileSize {
		return fmt.Errorf("image file size too small: %d bytes", info.Size())
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to decode PNG header: %w", err)
	}
	if cfg.Width < minDimension || cfg.Height < minDimension {
		return fmt.Errorf("image resolution too low: %dx%d", cfg.Width, cfg.Height)
	}

	return nil
}
