package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage   = errors.New("empty_image")
	ErrInvalidImage = errors.New("invalid_image")
)

// Image is a decoded-enough picture: raw bytes plus intrinsic size.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Valid reports whether the image has bytes and a usable size.
func (i Image) Valid() bool {
	return len(i.Data) > 0 && i.Width > 0 && i.Height > 0
}

// DecodeImage probes data (PNG, JPEG, GIF, BMP, WebP) without decoding pixels.
func DecodeImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, errors.Join(ErrInvalidImage, err)
	}
	return Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// DecodeDataURI decodes a "data:image/...;base64," reference.
func DecodeDataURI(ref string) (Image, bool) {
	if !strings.HasPrefix(ref, "data:") {
		return Image{}, false
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return Image{}, false
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Image{}, false
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return Image{}, false
		}
		data = []byte(s)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return Image{}, false
	}
	return img, true
}

// Images maps image references (URLs) to bytes fetched by the caller.
// Data URIs resolve without an entry.
type Images map[string]Image

// Resolve returns the image for ref.
func (m Images) Resolve(ref string) (Image, bool) {
	if ref == "" {
		return Image{}, false
	}
	if img, ok := m[ref]; ok && img.Valid() {
		return img, true
	}
	return DecodeDataURI(ref)
}

// Contain fits img inside the box keeping its aspect ratio, centered.
func Contain(x, y, w, h float64, img Image) (float64, float64, float64, float64) {
	if img.Width <= 0 || img.Height <= 0 || w <= 0 || h <= 0 {
		return x, y, 0, 0
	}
	scale := min(w/float64(img.Width), h/float64(img.Height))
	fw := float64(img.Width) * scale
	fh := float64(img.Height) * scale
	return x + (w-fw)/2, y + (h-fh)/2, fw, fh
}
