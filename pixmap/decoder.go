package pixmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
)

// decoder holds the header state while a single stream is parsed.
type decoder struct {
	r        *bufio.Reader
	tok      []byte
	variant  Variant
	width    int
	height   int
	maxValue int
}

func newDecoder(r io.Reader) *decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &decoder{r: br, tok: make([]byte, 0, 16)}
}

// Decode reads a P3 or P6 pixel map from r. On failure no buffer is returned
// and the error wraps exactly one of the package's Err values.
func Decode(r io.Reader) (*PixelBuffer, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return nil, err
	}

	size, err := bufferSize(d.width, d.height)
	if err != nil {
		return nil, err
	}
	pix := make([]uint8, size)

	switch d.variant {
	case Binary:
		err = d.readBinary(pix)
	case ASCII:
		err = d.readASCII(pix)
	}
	if err != nil {
		return nil, err
	}

	return &PixelBuffer{
		width:    d.width,
		height:   d.height,
		maxValue: d.maxValue,
		variant:  d.variant,
		pix:      pix,
	}, nil
}

// DecodeConfig returns the dimensions of a pixel map without reading its raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	defer f.Close()

	return Decode(f)
}

func (d *decoder) readHeader() error {
	var magic [2]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		if isEOF(err) {
			return fmt.Errorf("%w: missing magic token", ErrUnsupportedVariant)
		}
		return readFailure(err)
	}
	if magic[0] != 'P' {
		return fmt.Errorf("%w: bad magic token %q", ErrUnsupportedVariant, magic[:])
	}
	switch magic[1] {
	case '3':
		d.variant = ASCII
	case '6':
		d.variant = Binary
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedVariant, magic[:])
	}

	if err := d.skipComments(); err != nil {
		return err
	}

	var err error
	if d.width, err = d.readHeaderInt("width"); err != nil {
		return err
	}
	if d.height, err = d.readHeaderInt("height"); err != nil {
		return err
	}
	if d.maxValue, err = d.readHeaderInt("max color value"); err != nil {
		return err
	}

	if d.width <= 0 || d.height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrParse, d.width, d.height)
	}
	if d.maxValue <= 0 || d.maxValue > 255 {
		return fmt.Errorf("%w: max color value %d", ErrUnsupportedColorDepth, d.maxValue)
	}
	return nil
}

// skipComments discards every '#' line that follows the magic token.
func (d *decoder) skipComments() error {
	for {
		if err := d.skipSpace(); err != nil {
			return err
		}
		b, err := d.r.Peek(1)
		if err != nil || b[0] != '#' {
			// A missing header is reported by the first dimension read.
			return nil
		}
		if _, err := d.r.ReadSlice('\n'); err != nil {
			if errors.Is(err, bufio.ErrBufferFull) {
				// Comment longer than the read buffer; keep draining.
				for errors.Is(err, bufio.ErrBufferFull) {
					_, err = d.r.ReadSlice('\n')
				}
			}
			if err != nil && !isEOF(err) {
				return readFailure(err)
			}
		}
	}
}

func (d *decoder) skipSpace() error {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if isEOF(err) {
				return nil
			}
			return readFailure(err)
		}
		if !isSpace(b) {
			return d.r.UnreadByte()
		}
	}
}

// readToken skips leading whitespace and returns the next run of
// non-whitespace bytes. The single whitespace byte ending the token is
// consumed. An empty token means the stream ended.
func (d *decoder) readToken() ([]byte, error) {
	if err := d.skipSpace(); err != nil {
		return nil, err
	}
	d.tok = d.tok[:0]
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if isEOF(err) {
				return d.tok, nil
			}
			return nil, readFailure(err)
		}
		if isSpace(b) {
			return d.tok, nil
		}
		d.tok = append(d.tok, b)
	}
}

func (d *decoder) readHeaderInt(what string) (int, error) {
	tok, err := d.readToken()
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		return 0, fmt.Errorf("%w: missing %s", ErrParse, what)
	}
	v, ok := parseInt(tok)
	if !ok {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrParse, what, tok)
	}
	return v, nil
}

// readBinary fills pix with raw bytes. The whitespace byte following the max
// color value was consumed by readToken.
func (d *decoder) readBinary(pix []uint8) error {
	n, err := io.ReadFull(d.r, pix)
	if err != nil {
		if isEOF(err) {
			return fmt.Errorf("%w: read %d of %d bytes", ErrTruncatedData, n, len(pix))
		}
		return readFailure(err)
	}
	return nil
}

// readASCII fills pix with decimal samples, keeping the low 8 bits of each.
func (d *decoder) readASCII(pix []uint8) error {
	for i := range pix {
		tok, err := d.readToken()
		if err != nil {
			return err
		}
		if len(tok) == 0 {
			return fmt.Errorf("%w: missing sample %d of %d", ErrParse, i, len(pix))
		}
		v, ok := parseInt(tok)
		if !ok {
			return fmt.Errorf("%w: sample %d %q is not an integer", ErrParse, i, tok)
		}
		pix[i] = uint8(v)
	}
	return nil
}

func bufferSize(width, height int) (int, error) {
	if width > MaxBufferBytes/Channels/height {
		return 0, fmt.Errorf("%w: %dx%d exceeds %d bytes", ErrAllocation, width, height, MaxBufferBytes)
	}
	return width * height * Channels, nil
}

// parseInt parses an optionally signed decimal integer.
func parseInt(tok []byte) (int, bool) {
	neg := false
	switch tok[0] {
	case '-':
		neg = true
		tok = tok[1:]
	case '+':
		tok = tok[1:]
	}
	if len(tok) == 0 {
		return 0, false
	}
	v := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		if v > (math.MaxInt-int(c-'0'))/10 {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func readFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrFileUnavailable, err)
}
