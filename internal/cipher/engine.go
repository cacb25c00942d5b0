// Package cipher implements the five keyed pixel transforms. This is a
// reversible scrambler for demonstration purposes, not a secure cipher:
// keys are one byte and the operations are linear or bitwise with no
// diffusion or authentication.
package cipher

import (
	"math/rand"

	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

// Forward applies the named transform to a buffer and returns a new buffer;
// the input is never mutated. The transport layer validates key and method
// first, but both are re-checked here so the engine can never produce
// silently wrapped or shape-altered output.
func Forward(buf *pixel.Buffer, key int, method models.Method) (*pixel.Buffer, error) {
	return apply(buf, key, method, false)
}

// Backward applies the declared inverse of the named transform. For shift
// and steganography the inverse is not exact; see the per-method notes.
func Backward(buf *pixel.Buffer, key int, method models.Method) (*pixel.Buffer, error) {
	return apply(buf, key, method, true)
}

func apply(buf *pixel.Buffer, key int, method models.Method, backward bool) (*pixel.Buffer, error) {
	if key < 1 || key > 255 {
		return nil, apperrors.NewInvalidKeyError(key)
	}

	out := buf.Clone()

	switch method {
	case models.MethodSwap:
		swapChannels(out, key, backward)
	case models.MethodXOR:
		xorSamples(out, key)
	case models.MethodShift:
		shiftBits(out, key, backward)
	case models.MethodAES:
		rotateAndOffset(out, key, backward)
	case models.MethodSteganography:
		lsbNoise(out, backward)
	default:
		return nil, apperrors.NewUnknownMethodError(string(method))
	}

	if !out.SameShape(buf) {
		return nil, apperrors.NewShapeMismatchError("transform changed buffer shape")
	}
	return out, nil
}

// swapChannels exchanges channel 0 and channel 2 per pixel and offsets
// channel 1 by the key. On buffers with fewer than 3 channels the whole
// step is a no-op; the caller still gets an independent copy.
func swapChannels(buf *pixel.Buffer, key int, backward bool) {
	if buf.Channels < 3 {
		return
	}

	offset := key
	if backward {
		offset = -key
	}
	for i := 0; i < len(buf.Pix); i += buf.Channels {
		buf.Pix[i], buf.Pix[i+2] = buf.Pix[i+2], buf.Pix[i]
		buf.Pix[i+1] = mod256(int(buf.Pix[i+1]) + offset)
	}
}

// xorSamples XORs every sample with the key. XOR is self-inverse, so the
// same operation serves both directions.
func xorSamples(buf *pixel.Buffer, key int) {
	k := uint8(key)
	for i := range buf.Pix {
		buf.Pix[i] ^= k
	}
}

// shiftBits shifts every sample left by key mod 8 bits, keeping the low
// byte. The backward pass shifts right, which cannot recover the high bits
// the forward pass discarded: this transform is lossy whenever
// key mod 8 != 0, and that behavior is intentional.
func shiftBits(buf *pixel.Buffer, key int, backward bool) {
	n := uint(key % 8)
	for i, s := range buf.Pix {
		if backward {
			buf.Pix[i] = s >> n
		} else {
			buf.Pix[i] = uint8((int(s) << n) & 0xFF)
		}
	}
}

// rotateAndOffset circularly shifts rows down by key positions and adds
// 3*key to every sample mod 256. Despite the method name this is not AES;
// both halves are exactly invertible.
func rotateAndOffset(buf *pixel.Buffer, key int, backward bool) {
	shift := key
	offset := 3 * key
	if backward {
		shift = -key
		offset = -offset
	}

	rotateRows(buf, shift)
	for i, s := range buf.Pix {
		buf.Pix[i] = mod256(int(s) + offset)
	}
}

// rotateRows moves rows toward higher y by shift positions, wrapping.
func rotateRows(buf *pixel.Buffer, shift int) {
	h := buf.Height
	if h == 0 {
		return
	}
	shift = ((shift % h) + h) % h
	if shift == 0 {
		return
	}

	rowLen := buf.Width * buf.Channels
	rotated := make([]uint8, len(buf.Pix))
	for y := 0; y < h; y++ {
		src := buf.Pix[y*rowLen : (y+1)*rowLen]
		dst := ((y + shift) % h) * rowLen
		copy(rotated[dst:dst+rowLen], src)
	}
	copy(buf.Pix, rotated)
}

// lsbNoise replaces every sample's least significant bit with a fresh
// random bit on the forward pass, and clears it on the backward pass. The
// original LSB is lost either way: forward is non-deterministic and
// backward is a fixed mask, not a true inverse.
func lsbNoise(buf *pixel.Buffer, backward bool) {
	if backward {
		for i := range buf.Pix {
			buf.Pix[i] &= 0xFE
		}
		return
	}
	for i := range buf.Pix {
		buf.Pix[i] = buf.Pix[i]&0xFE | uint8(rand.Intn(2))
	}
}

// mod256 maps arbitrary intermediate values back into [0,255].
func mod256(v int) uint8 {
	return uint8(((v % 256) + 256) % 256)
}
