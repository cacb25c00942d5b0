// Package pixel holds the rectangular sample buffer that the analyzer and
// the transform engine operate on.
package pixel

import (
	"image"
	"image/color"
)

// Buffer is a width x height x channels grid of 8-bit samples, row-major
// and channel-interleaved. Channels is 1 for grayscale, 3 or 4 for color.
// Transforms never resize or reshape a buffer.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed buffer of the given shape.
func New(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// FromImage converts a decoded image into a 4-channel RGBA buffer. Samples
// are stored non-premultiplied: transforms routinely make color values
// exceed alpha, which premultiplied storage cannot represent.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy(), 4)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Pix[i] = c.R
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.B
			buf.Pix[i+3] = c.A
			i += 4
		}
	}
	return buf
}

// FromGray converts a grayscale image into a single-channel buffer.
func FromGray(gray *image.Gray) *Buffer {
	bounds := gray.Bounds()
	buf := New(bounds.Dx(), bounds.Dy(), 1)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.Pix[i] = gray.GrayAt(x, y).Y
			i++
		}
	}
	return buf
}

// ToImage renders the buffer as a standard image: Gray for single-channel
// buffers, non-premultiplied NRGBA otherwise. Three-channel buffers get an
// opaque alpha. PNG stores NRGBA samples byte-exact, so a ToImage, encode,
// decode, FromImage cycle preserves 4-channel buffers exactly.
func (b *Buffer) ToImage() image.Image {
	if b.Channels == 1 {
		gray := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		copy(gray.Pix, b.Pix)
		return gray
	}

	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := (y*b.Width + x) * b.Channels
			c := color.NRGBA{R: b.Pix[i], A: 255}
			if b.Channels >= 2 {
				c.G = b.Pix[i+1]
			}
			if b.Channels >= 3 {
				c.B = b.Pix[i+2]
			}
			if b.Channels >= 4 {
				c.A = b.Pix[i+3]
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Clone returns an independent deep copy. Callers may retain clones with no
// aliasing of the source.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// SameShape reports whether two buffers have identical dimensions.
func (b *Buffer) SameShape(other *Buffer) bool {
	return b.Width == other.Width &&
		b.Height == other.Height &&
		b.Channels == other.Channels
}

// Empty reports whether the buffer has zero area.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0
}
