package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"

	// Registered decoders for uploaded avatars and thumbnails.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	JPEGQuality = 75
	// MaxImagePixels bounds width×height before any pixel data is decoded.
	MaxImagePixels = 40_000_000
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image exceeds pixel limit")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImageName reports whether name carries one of the accepted image extensions.
func IsImageName(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// CheckImage reads only the image header from r. It returns the decoded
// format and a reader that replays the whole stream from the start.
func CheckImage(r io.Reader) (string, io.Reader, error) {
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", nil, ErrUnsupportedImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return "", nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return format, io.MultiReader(&head, r), nil
}

// ResizeToJPEG decodes an image, shrinks it to fit within maxSide×maxSide
// keeping the aspect ratio, flattens it onto white RGB and re-encodes it as JPEG.
// Images already inside the bounds keep their size.
func ResizeToJPEG(r io.Reader, maxSide int) ([]byte, error) {
	_, replay, err := CheckImage(r)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(replay)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxSide)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func fitWithin(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}
