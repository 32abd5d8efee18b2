// Package imaging decodes uploaded photos into frames the detector and the
// undertone estimator can read.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
	ErrImageTooSmall    = errors.New("image is too small")
)

// MinDimension is the smallest accepted width or height in pixels
const MinDimension = 64

// Frame is a decoded photo together with its original encoding
type Frame struct {
	Image  image.Image
	Format string
	Raw    []byte
}

// Width returns the frame width in pixels
func (f *Frame) Width() int { return f.Image.Bounds().Dx() }

// Height returns the frame height in pixels
func (f *Frame) Height() int { return f.Image.Bounds().Dy() }

// Decode parses a JPEG, PNG or WebP payload
func Decode(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := img.Bounds()
	if b.Dx() < MinDimension || b.Dy() < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d, minimum %dx%d", ErrImageTooSmall, b.Dx(), b.Dy(), MinDimension, MinDimension)
	}

	return &Frame{Image: img, Format: format, Raw: data}, nil
}

// FromImage wraps an already decoded image
func FromImage(img image.Image) *Frame {
	return &Frame{Image: img, Format: "raw"}
}
