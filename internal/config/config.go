// Package config loads lsystree settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"lsystree/anim"
	"lsystree/app"
	"lsystree/canvas"
	"lsystree/lsystem"
	"lsystree/turtle"
)

// File mirrors lsystree.yaml. Angles are radians.
type File struct {
	Seed       string            `yaml:"seed"`
	Iterations int               `yaml:"iterations"`
	Rules      map[string]string `yaml:"rules,omitempty"`
	MaxSymbols int               `yaml:"max_symbols"`

	Animation Animation `yaml:"animation"`
	Turtle    Turtle    `yaml:"turtle"`
	Display   Display   `yaml:"display"`
}

type Animation struct {
	InitialAngle    float64 `yaml:"initial_angle"`
	TargetAngle     float64 `yaml:"target_angle"`
	Policy          string  `yaml:"policy"`
	InitialWeight   float64 `yaml:"initial_weight"`
	WeightStep      float64 `yaml:"weight_step"`
	MaxWeight       float64 `yaml:"max_weight"`
	SettleThreshold float64 `yaml:"settle_threshold"`
	PeriodTicks     uint64  `yaml:"period_ticks"`
}

type Turtle struct {
	SegmentLength float64     `yaml:"segment_length"`
	Heading       float64     `yaml:"heading"`
	Origin        *[2]float64 `yaml:"origin,omitempty"`
}

type Display struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Scale      int    `yaml:"scale"`
	TPS        int    `yaml:"tps"`
	Background string `yaml:"background"`
	Stroke     string `yaml:"stroke"`
	HUD        bool   `yaml:"hud"`
}

// Default matches the reference animation: depth 7, easing from π/12 to 2π/3.
func Default() File {
	d := app.DefaultConfig()
	return File{
		Seed:       d.Seed,
		Iterations: d.Iterations,
		MaxSymbols: d.MaxSymbols,
		Animation: Animation{
			InitialAngle:    d.InitialAngle,
			TargetAngle:     d.TargetAngle,
			Policy:          d.Policy,
			InitialWeight:   d.Anim.InitialWeight,
			WeightStep:      d.Anim.WeightStep,
			MaxWeight:       d.Anim.MaxWeight,
			SettleThreshold: d.Anim.SettleThreshold,
			PeriodTicks:     d.Anim.PeriodTicks,
		},
		Turtle: Turtle{
			SegmentLength: d.SegmentLength,
			Heading:       d.Heading,
		},
		Display: Display{
			Width:      640,
			Height:     480,
			Scale:      1,
			TPS:        60,
			Background: d.Background.String(),
			Stroke:     d.Stroke.String(),
			HUD:        d.HUD,
		},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML over Default. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught later without a confusing
// error.
func (f File) Validate() error {
	var errs []error
	if f.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations: %w", lsystem.ErrNegativeIterations))
	}
	if !(f.Turtle.SegmentLength > 0) || math.IsInf(f.Turtle.SegmentLength, 0) {
		errs = append(errs, fmt.Errorf("turtle.segment_length must be positive, got %v", f.Turtle.SegmentLength))
	}
	if f.Display.Width <= 0 || f.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", f.Display.Width, f.Display.Height))
	}
	if f.MaxSymbols < 0 {
		errs = append(errs, fmt.Errorf("max_symbols must not be negative"))
	}
	if _, err := f.rules(); err != nil {
		errs = append(errs, err)
	}
	if _, err := anim.PolicyByName(f.Animation.Policy, anim.Params{}); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]string{"display.background": f.Display.Background, "display.stroke": f.Display.Stroke} {
		if _, err := canvas.ParseHex(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (f File) rules() (lsystem.Rules, error) {
	if len(f.Rules) == 0 {
		return nil, nil
	}
	r := make(lsystem.Rules, len(f.Rules))
	for k, v := range f.Rules {
		if len(k) != 1 {
			return nil, fmt.Errorf("rules: key %q must be a single symbol", k)
		}
		r[k[0]] = v
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return r, nil
}

// App converts a validated File into the frame driver config.
func (f File) App() (app.Config, error) {
	rules, err := f.rules()
	if err != nil {
		return app.Config{}, err
	}
	bg, err := canvas.ParseHex(f.Display.Background)
	if err != nil {
		return app.Config{}, err
	}
	stroke, err := canvas.ParseHex(f.Display.Stroke)
	if err != nil {
		return app.Config{}, err
	}
	cfg := app.Config{
		Seed:         f.Seed,
		Iterations:   f.Iterations,
		Rules:        rules,
		InitialAngle: f.Animation.InitialAngle,
		TargetAngle:  f.Animation.TargetAngle,
		Policy:       f.Animation.Policy,
		Anim: anim.Params{
			InitialWeight:   f.Animation.InitialWeight,
			WeightStep:      f.Animation.WeightStep,
			MaxWeight:       f.Animation.MaxWeight,
			SettleThreshold: f.Animation.SettleThreshold,
			PeriodTicks:     f.Animation.PeriodTicks,
		},
		SegmentLength: f.Turtle.SegmentLength,
		Heading:       f.Turtle.Heading,
		Background:    bg,
		Stroke:        stroke,
		HUD:           f.Display.HUD,
		MaxSymbols:    f.MaxSymbols,
	}
	if o := f.Turtle.Origin; o != nil {
		cfg.Origin = &turtle.Point{X: o[0], Y: o[1]}
	}
	return cfg, nil
}
