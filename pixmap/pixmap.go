package pixmap

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// Standard error types for pixel-map decoding.
var (
	ErrFileUnavailable       = errors.New("file unavailable")
	ErrUnsupportedVariant    = errors.New("unsupported pixel-map variant")
	ErrUnsupportedColorDepth = errors.New("image is not 8 bits per channel")
	ErrTruncatedData         = errors.New("truncated pixel data")
	ErrParse                 = errors.New("parse error")
	ErrAllocation            = errors.New("cannot allocate pixel buffer")
)

// Channels is the number of bytes stored per pixel. Alpha is never represented.
const Channels = 3

// MaxBufferBytes bounds the pixel buffer a header may request.
const MaxBufferBytes = 1 << 30

// Variant identifies the encoding a buffer was decoded from.
type Variant int

const (
	// ASCII is the plain-text encoding, magic "P3".
	ASCII Variant = 3
	// Binary is the raw byte encoding, magic "P6".
	Binary Variant = 6
)

func (v Variant) String() string {
	switch v {
	case ASCII:
		return "P3"
	case Binary:
		return "P6"
	default:
		return "unknown"
	}
}

// PixelBuffer is a decoded RGB image. Pixels are stored row-major, top to
// bottom, three bytes per pixel. A PixelBuffer is never mutated after Decode
// returns it.
type PixelBuffer struct {
	width    int
	height   int
	maxValue int
	variant  Variant
	pix      []uint8
}

// Width returns the width of the image in pixels.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the image in pixels.
func (p *PixelBuffer) Height() int {
	return p.height
}

// MaxValue returns the maxColorValue declared in the header. Pixel bytes are
// not rescaled against it.
func (p *PixelBuffer) MaxValue() int {
	return p.maxValue
}

// Variant returns the encoding the buffer was decoded from.
func (p *PixelBuffer) Variant() Variant {
	return p.variant
}

// Pix returns the raw RGB bytes. Callers must not modify the returned slice.
func (p *PixelBuffer) Pix() []uint8 {
	return p.pix
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image. Pixels are reported fully opaque.
func (p *PixelBuffer) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * Channels
	return color.RGBA{R: p.pix[i], G: p.pix[i+1], B: p.pix[i+2], A: 0xff}
}

// init registers both variants with the standard library's image package so
// image.Decode recognises pixel-map files.
func init() {
	decodeWrapper := func(r io.Reader) (image.Image, error) {
		return Decode(r)
	}

	image.RegisterFormat("ppm", "P3", decodeWrapper, DecodeConfig)
	image.RegisterFormat("ppm", "P6", decodeWrapper, DecodeConfig)
}
