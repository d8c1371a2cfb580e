package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Dimensions returns width and height without decoding the full image.
func (p *ImageProcessor) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// ProcessImage builds the resized variants served by the site.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	vs := map[string]int{"large": 1200, "medium": 600, "thumbnail": 300}
	variants := map[string][]byte{}
	for name, size := range vs {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}
