package canvas

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"
)

var (
	white = RGB(255, 255, 255)
	black = RGB(0, 0, 0)
)

func countInk(t *RGBATarget, ink Color) int {
	w, h := t.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if t.At(x, y) == ink {
				n++
			}
		}
	}
	return n
}

func TestDrawLineHorizontal(t *testing.T) {
	tgt := NewRGBATarget(10, 10)
	c := New(tgt, black, white)
	c.Clear()
	c.DrawLine(1, 5, 8, 5)

	for x := 1; x <= 8; x++ {
		if got := tgt.At(x, 5); got != black {
			t.Fatalf("pixel (%d,5) = %v, want ink", x, got)
		}
	}
	if got := countInk(tgt, black); got != 8 {
		t.Fatalf("ink pixels = %d, want 8", got)
	}
	if c.Lines() != 1 {
		t.Fatalf("lines = %d", c.Lines())
	}
}

func TestDrawLineClipsOffscreen(t *testing.T) {
	tgt := NewRGBATarget(8, 8)
	c := New(tgt, black, white)
	c.Clear()
	c.DrawLine(-5, 3, 20, 3)
	c.DrawLine(-5, -5, -1, -1)

	if got := countInk(tgt, black); got != 8 {
		t.Fatalf("ink pixels = %d, want 8", got)
	}
	if c.Lines() != 2 {
		t.Fatalf("lines = %d, want 2", c.Lines())
	}
}

// drawWithin fails the test if the draw calls do not finish promptly.
func drawWithin(t *testing.T, d time.Duration, draw func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		draw()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("draw did not return within %v", d)
	}
}

func TestDrawLineHugeEndpoint(t *testing.T) {
	tgt := NewRGBATarget(8, 8)
	c := New(tgt, black, white)
	c.Clear()
	drawWithin(t, 2*time.Second, func() { c.DrawLine(0, 0, 1e300, 1e300) })

	for i := 0; i < 8; i++ {
		if got := tgt.At(i, i); got != black {
			t.Fatalf("pixel (%d,%d) = %v, want ink", i, i, got)
		}
	}
	if got := countInk(tgt, black); got != 8 {
		t.Fatalf("ink pixels = %d, want 8", got)
	}

	c.Clear()
	drawWithin(t, 2*time.Second, func() { c.DrawLine(0, 0, 1e300, 1) })
	for x := 0; x < 8; x++ {
		if got := tgt.At(x, 0); got != black {
			t.Fatalf("pixel (%d,0) = %v, want ink", x, got)
		}
	}
}

func TestDrawLineLongAcrossTarget(t *testing.T) {
	tgt := NewRGBATarget(8, 8)
	c := New(tgt, black, white)
	c.Clear()
	drawWithin(t, 2*time.Second, func() {
		c.DrawLine(-1e12, 4, 1e12, 4)
		c.DrawLine(3, 1e12, 3, -1e12)
	})

	for i := 0; i < 8; i++ {
		if tgt.At(i, 4) != black || tgt.At(3, i) != black {
			t.Fatalf("row 4 / column 3 not fully inked at %d", i)
		}
	}
	if got := countInk(tgt, black); got != 15 {
		t.Fatalf("ink pixels = %d, want 15", got)
	}
}

func TestDrawLineNearMaxFloat(t *testing.T) {
	tgt := NewRGBATarget(8, 8)
	c := New(tgt, black, white)
	c.Clear()
	drawWithin(t, 2*time.Second, func() { c.DrawLine(-math.MaxFloat64, 2, math.MaxFloat64, 2) })

	n := countInk(tgt, black)
	if n == 0 || n > 8 {
		t.Fatalf("ink pixels = %d, want 1..8", n)
	}
	for x := 0; x < 8; x++ {
		for _, y := range []int{0, 1, 3, 4, 5, 6, 7} {
			if tgt.At(x, y) == black {
				t.Fatalf("ink off row 2 at (%d,%d)", x, y)
			}
		}
	}
}

func TestClearResetsLines(t *testing.T) {
	tgt := NewRGBATarget(4, 4)
	c := New(tgt, black, white)
	c.DrawLine(0, 0, 3, 3)
	c.Clear()
	if c.Lines() != 0 || countInk(tgt, black) != 0 {
		t.Fatalf("clear left lines=%d ink=%d", c.Lines(), countInk(tgt, black))
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	buf := make([]byte, 4*4*2)
	tgt := &RGB565Target{Buf: buf, Stride: 8, W: 4, H: 4}
	tgt.Clear(white)
	tgt.SetPixel(2, 1, black)
	tgt.SetPixel(9, 9, black) // clipped

	if got := tgt.At(2, 1); got != black {
		t.Fatalf("At(2,1) = %v", got)
	}
	if got := tgt.At(0, 0); got != white {
		t.Fatalf("At(0,0) = %v", got)
	}
}

func TestRGB565Codec(t *testing.T) {
	if got := RGB(255, 0, 0).RGB565(); got != 0xF800 {
		t.Fatalf("red = %#04x, want 0xf800", got)
	}
	for _, c := range []Color{white, black, RGB(255, 0, 255)} {
		if got := FromRGB565(c.RGB565()); got != c {
			t.Fatalf("FromRGB565(%v.RGB565()) = %v", c, got)
		}
	}
}

func TestCaptionDrawsInk(t *testing.T) {
	tgt := NewRGBATarget(64, 16)
	c := New(tgt, black, white)
	c.Clear()
	c.Caption(1, 10, "a=0.26", black)
	if countInk(tgt, black) == 0 {
		t.Fatalf("caption drew nothing")
	}
	if CaptionWidth("a=0.26") <= 0 {
		t.Fatalf("zero caption width")
	}
}

func TestParseHex(t *testing.T) {
	for in, want := range map[string]Color{
		"#dcdcdc":   Gray(220),
		"000":       black,
		"#ff000080": {R: 255, A: 0x80},
	} {
		got, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseHex(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Fatalf("expected error for short color")
	}
	if got := Gray(220).String(); got != "#dcdcdc" {
		t.Fatalf("String = %q", got)
	}
}

func TestEncodePNG(t *testing.T) {
	tgt := NewRGBATarget(5, 3)
	New(tgt, black, white).Clear()

	var buf bytes.Buffer
	if err := EncodePNG(&buf, tgt); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
}
