package hal

import (
	"context"
	"errors"
	"testing"

	"lsystree/canvas"
)

func TestFramebufferPresentPublishes(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(255, 255, 255)

	snap := make([]byte, len(fb.buf))
	if n := fb.snapshotRGB565(snap); n != 0 {
		t.Fatalf("presents = %d before Present", n)
	}
	for _, b := range snap {
		if b != 0 {
			t.Fatalf("unpresented frame leaked to front buffer")
		}
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	if n := fb.snapshotRGB565(snap); n != 1 {
		t.Fatalf("presents = %d, want 1", n)
	}
	for _, b := range snap {
		if b != 0xFF {
			t.Fatalf("front buffer = %x, want white", snap)
		}
	}
}

func TestExpandRGB565(t *testing.T) {
	p := canvas.RGB(255, 0, 0).RGB565()
	src := []byte{byte(p), byte(p >> 8)}
	dst := make([]byte, 4)
	expandRGB565(dst, src)
	if dst[0] != 255 || dst[1] != 0 || dst[2] != 0 || dst[3] != 0xFF {
		t.Fatalf("dst = %v", dst)
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var got HAL
	err := RunHeadless(context.Background(), func(h HAL) (StepFunc, error) {
		got = h
		return func() error { steps++; return nil }, nil
	}, HeadlessConfig{Width: 8, Height: 4, Hz: 1000, Ticks: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
	fb := got.Display().Framebuffer()
	if fb.Width() != 8 || fb.Height() != 4 || fb.StrideBytes() != 16 {
		t.Fatalf("framebuffer %dx%d stride %d", fb.Width(), fb.Height(), fb.StrideBytes())
	}
}

func TestRunHeadlessPropagatesStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) (StepFunc, error) {
		return func() error { return boom }, nil
	}, HeadlessConfig{Width: 1, Height: 1, Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunHeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) (StepFunc, error) { return nil, nil }, HeadlessConfig{Width: 1, Height: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
