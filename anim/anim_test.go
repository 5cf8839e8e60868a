package anim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEase_FirstTick(t *testing.T) {
	p := DefaultParams()
	s := NewState(math.Pi/12, 2*math.Pi/3, p)
	next := Ease{Params: p}.Advance(s)

	assert.InDelta(t, 0.002, next.Weight, 1e-12)
	want := math.Pi/12 + (2*math.Pi/3-math.Pi/12)*0.002
	assert.InDelta(t, want, next.Angle, 1e-12)
	assert.Equal(t, uint64(1), next.Tick)

	// Advance is pure.
	assert.Equal(t, math.Pi/12, s.Angle)
}

func TestEase_WeightCapped(t *testing.T) {
	p := DefaultParams()
	e := Ease{Params: p}
	s := NewState(0, 100, p)
	for i := 0; i < 200; i++ {
		s = e.Advance(s)
		require.LessOrEqual(t, s.Weight, p.MaxWeight+p.WeightStep)
	}
}

func TestEase_ConvergesAndSwaps(t *testing.T) {
	p := DefaultParams()
	e := Ease{Params: p}
	start, target := math.Pi/12, 2*math.Pi/3
	s := NewState(start, target, p)

	swapped := false
	for i := 0; i < 5000; i++ {
		prev := s
		s = e.Advance(s)
		require.True(t, s.Angle >= start-1e-9 && s.Angle <= target+1e-9, "angle %v out of range", s.Angle)
		if prev.Target != s.Target {
			swapped = true
			assert.InDelta(t, target, s.Angle, 0.01)
			assert.Equal(t, start, s.Target)
			assert.Equal(t, target, s.Previous)
			assert.Equal(t, p.InitialWeight, s.Weight)
			break
		}
	}
	assert.True(t, swapped, "ease never settled")
}

func TestSine_Endpoints(t *testing.T) {
	p := DefaultParams()
	p.PeriodTicks = 4
	w := Sine{Params: p}
	s := NewState(0, 1, p)

	s = w.Advance(s) // quarter
	assert.InDelta(t, 0.5, s.Angle, 1e-9)
	s = w.Advance(s) // half
	assert.InDelta(t, 1.0, s.Angle, 1e-9)
	s = w.Advance(s)
	s = w.Advance(s) // full period
	assert.InDelta(t, 0.0, s.Angle, 1e-9)
}

func TestStatic(t *testing.T) {
	s := NewState(0.4, 1, DefaultParams())
	s = Static{}.Advance(s)
	assert.Equal(t, 0.4, s.Angle)
	assert.Equal(t, uint64(1), s.Tick)
}

func TestPolicyByName(t *testing.T) {
	p := DefaultParams()
	for name, want := range map[string]Policy{
		"":       Ease{Params: p},
		"EASE":   Ease{Params: p},
		"sine":   Sine{Params: p},
		"static": Static{},
	} {
		got, err := PolicyByName(name, p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := PolicyByName("bounce", p)
	assert.Error(t, err)
}
