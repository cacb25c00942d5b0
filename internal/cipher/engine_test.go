package cipher

import (
	"bytes"
	"testing"

	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

// gradientBuffer fills a buffer with a deterministic spread of sample
// values so round trips exercise the whole byte range.
func gradientBuffer(width, height, channels int) *pixel.Buffer {
	buf := pixel.New(width, height, channels)
	for i := range buf.Pix {
		buf.Pix[i] = uint8((i*7 + 13) % 256)
	}
	return buf
}

func buffersEqual(a, b *pixel.Buffer) bool {
	return a.SameShape(b) && bytes.Equal(a.Pix, b.Pix)
}

func TestRoundTrip_Exact(t *testing.T) {
	methods := []models.Method{models.MethodSwap, models.MethodXOR, models.MethodAES}
	keys := []int{1, 3, 8, 77, 128, 255}

	for _, method := range methods {
		for _, key := range keys {
			buf := gradientBuffer(9, 7, 4)

			enc, err := Forward(buf, key, method)
			if err != nil {
				t.Fatalf("%s/%d: Forward failed: %v", method, key, err)
			}
			dec, err := Backward(enc, key, method)
			if err != nil {
				t.Fatalf("%s/%d: Backward failed: %v", method, key, err)
			}

			if !buffersEqual(buf, dec) {
				t.Errorf("%s/%d: round trip should be bit-exact", method, key)
			}
		}
	}
}

func TestForward_DoesNotMutateInput(t *testing.T) {
	buf := gradientBuffer(6, 6, 3)
	original := buf.Clone()

	for _, method := range models.Methods() {
		if _, err := Forward(buf, 42, method); err != nil {
			t.Fatalf("%s: Forward failed: %v", method, err)
		}
		if !buffersEqual(buf, original) {
			t.Fatalf("%s: Forward mutated its input", method)
		}
	}
}

func TestShapePreserved(t *testing.T) {
	for _, method := range models.Methods() {
		for _, shape := range [][3]int{{8, 5, 1}, {5, 8, 3}, {3, 3, 4}} {
			buf := gradientBuffer(shape[0], shape[1], shape[2])

			out, err := Forward(buf, 19, method)
			if err != nil {
				t.Fatalf("%s: Forward failed: %v", method, err)
			}
			if !out.SameShape(buf) {
				t.Errorf("%s: shape changed from %dx%dx%d to %dx%dx%d", method,
					buf.Width, buf.Height, buf.Channels, out.Width, out.Height, out.Channels)
			}
		}
	}
}

func TestSwap_ExchangesChannels(t *testing.T) {
	buf := pixel.New(1, 1, 3)
	buf.Pix[0], buf.Pix[1], buf.Pix[2] = 10, 20, 30

	out, err := Forward(buf, 5, models.MethodSwap)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if out.Pix[0] != 30 || out.Pix[2] != 10 {
		t.Errorf("Expected channels 0 and 2 exchanged, got %v", out.Pix)
	}
	if out.Pix[1] != 25 {
		t.Errorf("Expected channel 1 offset to 25, got %d", out.Pix[1])
	}
}

func TestSwap_MiddleChannelWraps(t *testing.T) {
	buf := pixel.New(1, 1, 3)
	buf.Pix[1] = 250

	out, err := Forward(buf, 10, models.MethodSwap)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if out.Pix[1] != 4 {
		t.Errorf("Expected (250+10) mod 256 = 4, got %d", out.Pix[1])
	}

	back, err := Backward(out, 10, models.MethodSwap)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	if back.Pix[1] != 250 {
		t.Errorf("Expected wrap to invert back to 250, got %d", back.Pix[1])
	}
}

func TestSwap_FewChannelsIsNoOp(t *testing.T) {
	buf := gradientBuffer(4, 4, 1)

	out, err := Forward(buf, 99, models.MethodSwap)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if !buffersEqual(buf, out) {
		t.Error("swap on a single-channel buffer must leave samples unchanged")
	}
	if &buf.Pix[0] == &out.Pix[0] {
		t.Error("swap must still return an independent copy")
	}
}

func TestXOR_SelfInverse(t *testing.T) {
	buf := gradientBuffer(4, 4, 4)

	once, err := Forward(buf, 170, models.MethodXOR)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	twice, err := Forward(once, 170, models.MethodXOR)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if !buffersEqual(buf, twice) {
		t.Error("applying xor twice with the same key must restore the input")
	}
}

func TestShift_LosslessWhenKeyMod8Zero(t *testing.T) {
	for _, key := range []int{8, 16, 240} {
		buf := gradientBuffer(6, 4, 3)

		enc, err := Forward(buf, key, models.MethodShift)
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		dec, err := Backward(enc, key, models.MethodShift)
		if err != nil {
			t.Fatalf("Backward failed: %v", err)
		}

		if !buffersEqual(buf, dec) {
			t.Errorf("key %d: shift by 0 bits must round-trip exactly", key)
		}
	}
}

func TestShift_LossyOtherwise(t *testing.T) {
	// 0x80 loses its only set bit on a left shift, so the round trip cannot
	// restore it. This is the documented lossy behavior, not a failure.
	buf := pixel.New(2, 1, 1)
	buf.Pix[0] = 0x80
	buf.Pix[1] = 0x01

	enc, err := Forward(buf, 3, models.MethodShift)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if enc.Pix[0] != 0 {
		t.Errorf("Expected 0x80<<3 mod 256 = 0, got %d", enc.Pix[0])
	}
	if enc.Pix[1] != 0x08 {
		t.Errorf("Expected 0x01<<3 = 0x08, got %d", enc.Pix[1])
	}

	dec, err := Backward(enc, 3, models.MethodShift)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	if dec.Pix[0] == buf.Pix[0] {
		t.Error("Expected the shifted-out bit to stay lost")
	}
	if dec.Pix[1] != 0x01 {
		t.Errorf("Low bits should survive the round trip, got %d", dec.Pix[1])
	}
}

func TestAES_RotatesRowsDown(t *testing.T) {
	// 1x3 single-channel buffer, key 1: row y moves to y+1 wrapping, and
	// every sample gains 3*key.
	buf := pixel.New(1, 3, 1)
	buf.Pix[0], buf.Pix[1], buf.Pix[2] = 10, 20, 30

	out, err := Forward(buf, 1, models.MethodAES)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	want := []uint8{33, 13, 23}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("Expected %v, got %v", want, out.Pix)
	}
}

func TestAES_KeyLargerThanHeight(t *testing.T) {
	buf := gradientBuffer(3, 4, 1)

	big, err := Forward(buf, 5, models.MethodAES)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	dec, err := Backward(big, 5, models.MethodAES)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	if !buffersEqual(buf, dec) {
		t.Error("rotation by more than the height must still round-trip")
	}
}

func TestSteganography_ForwardNonDeterministic(t *testing.T) {
	buf := gradientBuffer(64, 64, 1)

	a, err := Forward(buf, 1, models.MethodSteganography)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	b, err := Forward(buf, 1, models.MethodSteganography)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	// 4096 independent random bits; identical outputs are vanishingly
	// unlikely.
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("two forward passes should differ in at least one LSB")
	}

	for i := range a.Pix {
		if a.Pix[i]&0xFE != buf.Pix[i]&0xFE {
			t.Fatal("only the LSB may change")
		}
	}
}

func TestSteganography_BackwardClearsLSB(t *testing.T) {
	buf := gradientBuffer(8, 8, 3)

	out, err := Backward(buf, 200, models.MethodSteganography)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	for i, s := range out.Pix {
		if s&1 != 0 {
			t.Fatalf("sample %d still has its LSB set", i)
		}
		if s != buf.Pix[i]&0xFE {
			t.Fatalf("sample %d: expected %d, got %d", i, buf.Pix[i]&0xFE, s)
		}
	}
}

func TestInvalidKey(t *testing.T) {
	buf := gradientBuffer(2, 2, 3)

	for _, key := range []int{0, -1, 256, 1000} {
		if _, err := Forward(buf, key, models.MethodXOR); !apperrors.IsKind(err, apperrors.KindInvalidKey) {
			t.Errorf("Forward with key %d: expected invalid_key error, got %v", key, err)
		}
		if _, err := Backward(buf, key, models.MethodXOR); !apperrors.IsKind(err, apperrors.KindInvalidKey) {
			t.Errorf("Backward with key %d: expected invalid_key error, got %v", key, err)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	buf := gradientBuffer(2, 2, 3)

	_, err := Forward(buf, 10, models.Method("rot13"))
	if !apperrors.IsKind(err, apperrors.KindUnknownMethod) {
		t.Errorf("Expected unknown_method error, got %v", err)
	}
}
