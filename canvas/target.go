package canvas

import "image"

// Target is a minimal pixel target.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RGB565Target renders into an RGB565 framebuffer buffer.
//
// Callers provide the backing buffer and layout (stride).
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) Clear(c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 || t.W <= 0 || t.H <= 0 {
		return
	}
	p := c.RGB565()
	lo := byte(p)
	hi := byte(p >> 8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	p := c.RGB565()
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// At decodes the pixel at (x, y). Out-of-bounds reads return the zero Color.
func (t *RGB565Target) At(x, y int) Color {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return Color{}
	}
	return FromRGB565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
}

// RGBATarget renders into an *image.RGBA, for stills and tests.
type RGBATarget struct {
	Img *image.RGBA
}

func NewRGBATarget(w, h int) *RGBATarget {
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) Size() (w, h int) {
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) Clear(c Color) {
	rgba := c.RGBA8()
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = rgba.R
		pix[i+1] = rgba.G
		pix[i+2] = rgba.B
		pix[i+3] = rgba.A
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(t.Img.Bounds()) {
		return
	}
	t.Img.SetRGBA(x, y, c.RGBA8())
}

func (t *RGBATarget) At(x, y int) Color {
	c := t.Img.RGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGB565 packs c into 16-bit 5:6:5, dropping alpha.
func (c Color) RGB565() uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// FromRGB565 expands a 5:6:5 pixel to an opaque Color.
func FromRGB565(p uint16) Color {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return RGB(uint8(r*255/31), uint8(g*255/63), uint8(b*255/31))
}
