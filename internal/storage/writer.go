package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// jpegQuality matches the quality the GUI save dialog advertises.
const jpegQuality = 95

// WriteImage encodes img in the given format (png, jpg, bmp) and writes it
// to path. The write goes through a temporary file in the same directory so
// a failed encode never leaves a partial image behind.
func WriteImage(path string, img image.Image, format string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapvault-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, img, format); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storage: move image into place: %w", err)
	}
	return nil
}

func encode(f *os.File, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		return fmt.Errorf("storage: unsupported image format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", format, err)
	}
	return nil
}
