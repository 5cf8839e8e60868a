// Package anim computes the branch angle for each animation tick.
//
// A Policy is a pure step function: Advance(State) returns the next State and
// never touches anything else. The frame driver owns the only State value.
package anim

import (
	"fmt"
	"math"
	"strings"
)

// State is the controller state carried between ticks.
type State struct {
	Angle    float64
	Weight   float64
	Target   float64
	Previous float64
	Tick     uint64
}

// Params tunes the easing policy.
type Params struct {
	InitialWeight   float64
	WeightStep      float64
	MaxWeight       float64
	SettleThreshold float64
	// PeriodTicks is the full back-and-forth period of the sine policy.
	PeriodTicks uint64
}

func DefaultParams() Params {
	return Params{
		InitialWeight:   0.001,
		WeightStep:      0.001,
		MaxWeight:       0.05,
		SettleThreshold: 0.0001,
		PeriodTicks:     600,
	}
}

// NewState starts at initial and heads for target. initial becomes the far end
// once target is reached.
func NewState(initial, target float64, p Params) State {
	return State{
		Angle:    initial,
		Weight:   p.InitialWeight,
		Target:   target,
		Previous: initial,
	}
}

// Policy advances the controller by one tick.
type Policy interface {
	Advance(s State) State
}

// Ease moves the angle a growing fraction of the remaining distance each tick,
// so motion starts slow, speeds up and settles. Once a step is smaller than
// SettleThreshold it swaps Target and Previous and starts over.
type Ease struct {
	Params Params
}

func (e Ease) Advance(s State) State {
	p := e.Params
	if s.Weight < p.MaxWeight {
		s.Weight += p.WeightStep
	}
	inc := (s.Target - s.Angle) * s.Weight
	s.Angle += inc
	if math.Abs(inc) < p.SettleThreshold {
		s.Weight = p.InitialWeight
		s.Target, s.Previous = s.Previous, s.Target
	}
	s.Tick++
	return s
}

// Sine swings between Previous and Target on a cosine curve.
type Sine struct {
	Params Params
}

func (w Sine) Advance(s State) State {
	s.Tick++
	period := w.Params.PeriodTicks
	if period == 0 {
		period = DefaultParams().PeriodTicks
	}
	phase := 2 * math.Pi * float64(s.Tick%period) / float64(period)
	mid := (s.Previous + s.Target) / 2
	amp := (s.Previous - s.Target) / 2
	s.Angle = mid + amp*math.Cos(phase)
	return s
}

// Static never changes the angle.
type Static struct{}

func (Static) Advance(s State) State {
	s.Tick++
	return s
}

// Policy names accepted by PolicyByName.
const (
	PolicyEase   = "ease"
	PolicySine   = "sine"
	PolicyStatic = "static"
)

// PolicyByName resolves a configured policy name. The empty name selects Ease.
func PolicyByName(name string, p Params) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyEase:
		return Ease{Params: p}, nil
	case PolicySine:
		return Sine{Params: p}, nil
	case PolicyStatic:
		return Static{}, nil
	default:
		return nil, fmt.Errorf("anim: unknown policy %q", name)
	}
}
