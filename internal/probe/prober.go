package probe

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Probe reads the header of the image at path.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return &ImageInfo{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Dimensions returns the width and height of the image at path.
func Dimensions(path string) (w, h int, err error) {
	info, err := Probe(path)
	if err != nil {
		return 0, 0, err
	}
	return info.Width, info.Height, nil
}
