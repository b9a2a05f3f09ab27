// Package imagery transcodes camera frames between raw pixel buffers and
// lossless PNG.
package imagery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"
)

// Encoding names the pixel layout of a raw image buffer.
type Encoding string

const (
	Mono8  Encoding = "mono8"
	Mono16 Encoding = "mono16"
	RGB8   Encoding = "rgb8"
	BGR8   Encoding = "bgr8"
	RGBA8  Encoding = "rgba8"
	BGRA8  Encoding = "bgra8"
	RGB16  Encoding = "rgb16"
	RGBA16 Encoding = "rgba16"
)

// FormatPNG tags a CompressedImage holding PNG bytes.
const FormatPNG = "png"

// BytesPerPixel returns the pixel size of e, or 0 if e is not supported.
func (e Encoding) BytesPerPixel() int {
	switch e {
	case Mono8:
		return 1
	case Mono16:
		return 2
	case RGB8, BGR8:
		return 3
	case RGBA8, BGRA8:
		return 4
	case RGB16:
		return 6
	case RGBA16:
		return 8
	}
	return 0
}

// Image is a raw pixel buffer. 16-bit samples are big-endian.
type Image struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Encoding Encoding `json:"encoding"`

	// Step is the row length in bytes; zero means tightly packed
	Step int    `json:"step"`
	Data []byte `json:"data"`
}

// CompressedImage is an encoded image tagged with its container format.
type CompressedImage struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

// CodecError reports image bytes or buffers that cannot be transcoded.
type CodecError struct {
	// Op is "encode" or "decode"
	Op     string
	Reason string
	Err    error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("image %s: %s", e.Op, e.Reason)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// IsCodecError checks if an error is an image codec error.
func IsCodecError(err error) (*CodecError, bool) {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// bufferPool lets concurrent encodes reuse PNG compressor state.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

// Transcoder converts between raw images and PNG at maximum compression.
// It is safe for concurrent use.
type Transcoder struct {
	encoder png.Encoder
}

// NewTranscoder creates a Transcoder.
func NewTranscoder() *Transcoder {
	return &Transcoder{
		encoder: png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       &bufferPool{},
		},
	}
}

// Encode compresses a raw image to PNG.
func (t *Transcoder) Encode(img *Image) ([]byte, error) {
	m, err := img.toImage()
	if err != nil {
		return nil, err
	}
	return t.encode(m)
}

// EncodeCompressed decodes an image held in any supported container
// (PNG, JPEG or GIF) and re-encodes it as PNG.
func (t *Transcoder) EncodeCompressed(c *CompressedImage) ([]byte, error) {
	if c == nil {
		return nil, &CodecError{Op: "encode", Reason: "nil image"}
	}
	m, err := decodeImage(c.Data)
	if err != nil {
		return nil, err
	}
	return t.encode(m)
}

// Decode decompresses image bytes into a raw image. The encoding is chosen
// from the decoded content: grayscale becomes mono, opaque colour rgb and
// anything with transparency rgba, at 8 or 16 bits per sample.
func (t *Transcoder) Decode(data []byte) (*Image, error) {
	m, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return fromImage(m), nil
}

// DecodeCompressed decodes image bytes and re-encodes them as PNG.
func (t *Transcoder) DecodeCompressed(data []byte) (*CompressedImage, error) {
	m, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	out, err := t.encode(m)
	if err != nil {
		return nil, err
	}
	return &CompressedImage{Format: FormatPNG, Data: out}, nil
}

func (t *Transcoder) encode(m image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.encoder.Encode(&buf, m); err != nil {
		return nil, &CodecError{Op: "encode", Reason: "png", Err: err}
	}
	return buf.Bytes(), nil
}

// MaxPixels bounds the Width*Height an input header may declare. Decoders
// allocate the full raster up front, so the header is checked before any
// pixel data is read.
const MaxPixels = 64 << 20

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, &CodecError{Op: "decode", Reason: "empty input"}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &CodecError{Op: "decode", Reason: "malformed or unsupported image", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxPixels || cfg.Height > MaxPixels/cfg.Width {
		return nil, &CodecError{Op: "decode", Reason: fmt.Sprintf("image too large (%dx%d)", cfg.Width, cfg.Height)}
	}
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &CodecError{Op: "decode", Reason: "malformed or unsupported image", Err: err}
	}
	return m, nil
}

// Validate checks that the buffer is large enough for its geometry.
func (img *Image) Validate() error {
	if img == nil {
		return &CodecError{Op: "encode", Reason: "nil image"}
	}
	bpp := img.Encoding.BytesPerPixel()
	if bpp == 0 {
		return &CodecError{Op: "encode", Reason: fmt.Sprintf("unsupported encoding %q", img.Encoding)}
	}
	if img.Width <= 0 || img.Height <= 0 {
		return &CodecError{Op: "encode", Reason: fmt.Sprintf("invalid size %dx%d", img.Width, img.Height)}
	}
	row := img.Width * bpp
	step := img.stride()
	if step < row {
		return &CodecError{Op: "encode", Reason: fmt.Sprintf("step %d shorter than row of %d bytes", step, row)}
	}
	if need := step*(img.Height-1) + row; len(img.Data) < need {
		return &CodecError{Op: "encode", Reason: fmt.Sprintf("buffer has %d bytes, need %d", len(img.Data), need)}
	}
	return nil
}

func (img *Image) stride() int {
	if img.Step > 0 {
		return img.Step
	}
	return img.Width * img.Encoding.BytesPerPixel()
}

func (img *Image) toImage() (image.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, img.Width, img.Height)
	step := img.stride()
	bpp := img.Encoding.BytesPerPixel()

	switch img.Encoding {
	case Mono8:
		m := image.NewGray(rect)
		copyRows(m.Pix, m.Stride, img.Data, step, img.Width*bpp, img.Height)
		return m, nil

	case Mono16:
		m := image.NewGray16(rect)
		copyRows(m.Pix, m.Stride, img.Data, step, img.Width*bpp, img.Height)
		return m, nil

	case RGB8, BGR8:
		m := image.NewNRGBA(rect)
		for y := 0; y < img.Height; y++ {
			src := img.Data[y*step:]
			dst := m.Pix[y*m.Stride:]
			for x := 0; x < img.Width; x++ {
				s, d := src[x*3:x*3+3], dst[x*4:x*4+4]
				if img.Encoding == BGR8 {
					d[0], d[1], d[2] = s[2], s[1], s[0]
				} else {
					d[0], d[1], d[2] = s[0], s[1], s[2]
				}
				d[3] = 0xff
			}
		}
		return m, nil

	case RGBA8, BGRA8:
		m := image.NewNRGBA(rect)
		copyRows(m.Pix, m.Stride, img.Data, step, img.Width*bpp, img.Height)
		if img.Encoding == BGRA8 {
			for i := 0; i+3 < len(m.Pix); i += 4 {
				m.Pix[i], m.Pix[i+2] = m.Pix[i+2], m.Pix[i]
			}
		}
		return m, nil

	case RGB16:
		m := image.NewNRGBA64(rect)
		for y := 0; y < img.Height; y++ {
			src := img.Data[y*step:]
			dst := m.Pix[y*m.Stride:]
			for x := 0; x < img.Width; x++ {
				copy(dst[x*8:x*8+6], src[x*6:x*6+6])
				dst[x*8+6], dst[x*8+7] = 0xff, 0xff
			}
		}
		return m, nil

	case RGBA16:
		m := image.NewNRGBA64(rect)
		copyRows(m.Pix, m.Stride, img.Data, step, img.Width*bpp, img.Height)
		return m, nil
	}

	return nil, &CodecError{Op: "encode", Reason: fmt.Sprintf("unsupported encoding %q", img.Encoding)}
}

func copyRows(dst []byte, dstStride int, src []byte, srcStride, row, height int) {
	for y := 0; y < height; y++ {
		copy(dst[y*dstStride:y*dstStride+row], src[y*srcStride:y*srcStride+row])
	}
}

type opaquer interface {
	Opaque() bool
}

func isOpaque(m image.Image) bool {
	if o, ok := m.(opaquer); ok {
		return o.Opaque()
	}
	return false
}

func fromImage(m image.Image) *Image {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := m.(type) {
	case *image.Gray:
		out := newImage(w, h, Mono8)
		copyRows(out.Data, out.Step, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, out.Step, h)
		return out

	case *image.Gray16:
		out := newImage(w, h, Mono16)
		copyRows(out.Data, out.Step, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, out.Step, h)
		return out

	case *image.NRGBA:
		if !src.Opaque() {
			out := newImage(w, h, RGBA8)
			copyRows(out.Data, out.Step, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, out.Step, h)
			return out
		}

	case *image.NRGBA64:
		if !src.Opaque() {
			out := newImage(w, h, RGBA16)
			copyRows(out.Data, out.Step, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, out.Step, h)
			return out
		}
	}

	if is16Bit(m.ColorModel()) {
		return fromImage16(m, isOpaque(m))
	}
	return fromImage8(m, isOpaque(m))
}

func is16Bit(model color.Model) bool {
	switch model {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model, color.Alpha16Model:
		return true
	}
	return false
}

func fromImage8(m image.Image, opaque bool) *Image {
	b := m.Bounds()
	enc := RGBA8
	if opaque {
		enc = RGB8
	}
	out := newImage(b.Dx(), b.Dy(), enc)
	bpp := enc.BytesPerPixel()

	for y := 0; y < b.Dy(); y++ {
		row := out.Data[y*out.Step:]
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p := row[x*bpp:]
			p[0], p[1], p[2] = c.R, c.G, c.B
			if !opaque {
				p[3] = c.A
			}
		}
	}
	return out
}

func fromImage16(m image.Image, opaque bool) *Image {
	b := m.Bounds()
	enc := RGBA16
	if opaque {
		enc = RGB16
	}
	out := newImage(b.Dx(), b.Dy(), enc)
	bpp := enc.BytesPerPixel()

	for y := 0; y < b.Dy(); y++ {
		row := out.Data[y*out.Step:]
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBA64Model.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			p := row[x*bpp:]
			putUint16(p[0:], c.R)
			putUint16(p[2:], c.G)
			putUint16(p[4:], c.B)
			if !opaque {
				putUint16(p[6:], c.A)
			}
		}
	}
	return out
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func newImage(w, h int, enc Encoding) *Image {
	step := w * enc.BytesPerPixel()
	return &Image{
		Width:    w,
		Height:   h,
		Encoding: enc,
		Step:     step,
		Data:     make([]byte, step*h),
	}
}
