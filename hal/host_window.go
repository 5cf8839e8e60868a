//go:build cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int
}

// RunWindow opens a desktop window that shows the framebuffer and calls the
// app's step function once per tick. It blocks until the window closes or the
// step function fails.
func RunWindow(cfg WindowConfig, newApp AppFactory) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	h := New(cfg.Width, cfg.Height).(*hostHAL)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type hostGame struct {
	h        *hostHAL
	img      *image.RGBA
	fbImg    *ebiten.Image
	scratch  []byte
	uploaded uint64
	step     StepFunc
}

func (g *hostGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.uploaded = 0
	}

	if n := fb.snapshotRGB565(g.scratch); n != g.uploaded {
		expandRGB565(g.img.Pix, g.scratch)
		g.fbImg.WritePixels(g.img.Pix)
		g.uploaded = n
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
