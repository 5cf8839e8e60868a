package app

import (
	"math"

	"lsystree/anim"
	"lsystree/canvas"
	"lsystree/lsystem"
	"lsystree/turtle"
)

// Config is everything the frame driver needs. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Seed       string
	Iterations int
	// Rules nil means lsystem.DefaultRules.
	Rules lsystem.Rules

	InitialAngle float64
	TargetAngle  float64
	Policy       string
	Anim         anim.Params

	SegmentLength float64
	// Origin nil means turtle.DefaultConfig's bottom-center root.
	Origin  *turtle.Point
	Heading float64

	Background canvas.Color
	Stroke     canvas.Color
	HUD        bool

	// MaxSymbols bounds the expanded instruction string. 0 means
	// DefaultMaxSymbols; there is no unbounded setting.
	MaxSymbols int
}

const DefaultMaxSymbols = 4 << 20

func DefaultConfig() Config {
	return Config{
		Seed:          "0",
		Iterations:    7,
		InitialAngle:  math.Pi / 12,
		TargetAngle:   2 * math.Pi / 3,
		Policy:        anim.PolicyEase,
		Anim:          anim.DefaultParams(),
		SegmentLength: 5,
		Heading:       3 * math.Pi / 2,
		Background:    canvas.Gray(220),
		Stroke:        canvas.RGB(0, 0, 0),
		HUD:           true,
		MaxSymbols:    DefaultMaxSymbols,
	}
}

func (c Config) rules() lsystem.Rules {
	if c.Rules == nil {
		return lsystem.DefaultRules()
	}
	return c.Rules
}

func (c Config) turtleConfig(width, height int) turtle.Config {
	tc := turtle.DefaultConfig(width, height)
	if c.Origin != nil {
		tc.Origin = *c.Origin
	}
	tc.Heading = c.Heading
	tc.SegmentLength = c.SegmentLength
	return tc
}
