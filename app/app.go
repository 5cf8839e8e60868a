// Package app is the frame driver: it expands the instruction string once and
// then, every tick, advances the animation controller and replays the string
// through the turtle onto a canvas.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"lsystree/anim"
	"lsystree/canvas"
	"lsystree/hal"
	"lsystree/internal/logging"
	"lsystree/internal/metrics"
	"lsystree/lsystem"
	"lsystree/turtle"
)

var ErrInvalidConfig = errors.New("app: invalid config")

// Tree animates one expanded L-system.
type Tree struct {
	instr  string
	policy anim.Policy
	state  anim.State
	cv     *canvas.Canvas
	turtle turtle.Config
	hud    bool
	iter   int

	log     *slog.Logger
	metrics *metrics.Recorder
	present func() error
	now     func() time.Time

	frame uint64
}

type Option func(*Tree)

func WithLogger(l *slog.Logger) Option { return func(t *Tree) { t.log = l } }

func WithMetrics(m *metrics.Recorder) Option { return func(t *Tree) { t.metrics = m } }

// WithPresent sets the hook called after each completed frame.
func WithPresent(f func() error) Option { return func(t *Tree) { t.present = f } }

// New validates cfg, expands the instruction string and binds it to target.
func New(cfg Config, target canvas.Target, opts ...Option) (*Tree, error) {
	if !(cfg.SegmentLength > 0) || math.IsInf(cfg.SegmentLength, 0) {
		return nil, fmt.Errorf("%w: segment length %v", ErrInvalidConfig, cfg.SegmentLength)
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, lsystem.ErrNegativeIterations)
	}
	rules := cfg.rules()
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := lsystem.CheckBalanced(cfg.Seed); err != nil {
		return nil, fmt.Errorf("%w: seed: %w", ErrInvalidConfig, err)
	}
	policy, err := anim.PolicyByName(cfg.Policy, cfg.Anim)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	instr, err := Instructions(rules, cfg.Seed, cfg.Iterations, cfg.MaxSymbols)
	if err != nil {
		return nil, err
	}

	w, h := target.Size()
	t := &Tree{
		instr:  instr,
		policy: policy,
		state:  anim.NewState(cfg.InitialAngle, cfg.TargetAngle, cfg.Anim),
		cv:     canvas.New(target, cfg.Stroke, cfg.Background),
		turtle: cfg.turtleConfig(w, h),
		hud:    cfg.HUD,
		iter:   cfg.Iterations,
		log:    logging.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	t.metrics.Instructions(len(instr))
	t.log.Info("instructions expanded",
		"seed", cfg.Seed,
		"iterations", cfg.Iterations,
		"symbols", len(instr),
		"policy", cfg.Policy,
	)
	return t, nil
}

// Instructions expands seed, refusing results longer than maxSymbols before
// building them. maxSymbols <= 0 means DefaultMaxSymbols and nil rules means
// lsystem.DefaultRules.
func Instructions(rules lsystem.Rules, seed string, iterations, maxSymbols int) (string, error) {
	if rules == nil {
		rules = lsystem.DefaultRules()
	}
	if maxSymbols <= 0 {
		maxSymbols = DefaultMaxSymbols
	}
	n, err := rules.Len(seed, iterations)
	if err != nil {
		return "", err
	}
	if n > maxSymbols {
		return "", fmt.Errorf("%w: %d symbols exceeds limit %d", lsystem.ErrTooLarge, n, maxSymbols)
	}
	instr, err := rules.Expand(seed, iterations)
	if err != nil {
		return "", err
	}
	// Seeds reach here unchecked from the server and the CLI.
	if err := lsystem.CheckBalanced(instr); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return instr, nil
}

func (t *Tree) Instructions() string { return t.instr }
func (t *Tree) State() anim.State    { return t.state }
func (t *Tree) Frame() uint64        { return t.frame }

// Step advances the controller by one tick and renders the new angle.
func (t *Tree) Step() error {
	t.state = t.policy.Advance(t.state)
	return t.Render(t.state.Angle)
}

// Render draws one complete frame at angle. If the turtle fails the canvas is
// wiped to the background and the frame is not presented.
func (t *Tree) Render(angle float64) error {
	start := t.now()
	t.frame++

	t.cv.Clear()
	st, err := turtle.Interpret(t.instr, angle, t.turtle, t.cv)
	if err != nil {
		t.cv.Clear()
		t.metrics.FrameFailed()
		t.log.Error("frame discarded", "frame", t.frame, "angle", angle, "error", err)
		return fmt.Errorf("frame %d: %w", t.frame, err)
	}
	if t.hud {
		t.caption(angle)
	}
	if t.present != nil {
		if err := t.present(); err != nil {
			return fmt.Errorf("present frame %d: %w", t.frame, err)
		}
	}

	d := t.now().Sub(start)
	t.metrics.Frame(d, st.Segments, angle)
	t.log.Debug("frame", "frame", t.frame, "angle", angle, "segments", st.Segments, "depth", st.MaxDepth, "took", d)
	return nil
}

// caption prints the angle in the top-left corner, dropping detail until it
// fits the surface width.
func (t *Tree) caption(angle float64) {
	w, _ := t.cv.Size()
	for _, text := range []string{
		fmt.Sprintf("angle %.3f  n=%d  %d sym", angle, t.iter, len(t.instr)),
		fmt.Sprintf("%.3f", angle),
	} {
		if canvas.CaptionWidth(text)+8 <= w {
			t.cv.Caption(4, 10, text, t.cv.Stroke)
			return
		}
	}
}

// NewWithConfig returns a hal.AppFactory that animates cfg on the HAL display.
func NewWithConfig(cfg Config, opts ...Option) hal.AppFactory {
	return func(h hal.HAL) (hal.StepFunc, error) {
		d := h.Display()
		if d == nil {
			return nil, errors.New("app: no display")
		}
		fb := d.Framebuffer()
		if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
			return nil, errors.New("app: unsupported framebuffer")
		}
		target := &canvas.RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}
		tree, err := New(cfg, target, append(opts, WithPresent(fb.Present))...)
		if err != nil {
			return nil, err
		}
		return tree.Step, nil
	}
}

// RenderPNG renders a single still of cfg at angle.
func RenderPNG(w io.Writer, cfg Config, angle float64, width, height int, opts ...Option) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, width, height)
	}
	target := canvas.NewRGBATarget(width, height)
	tree, err := New(cfg, target, opts...)
	if err != nil {
		return err
	}
	if err := tree.Render(angle); err != nil {
		return err
	}
	return canvas.EncodePNG(w, target)
}
