package turtle

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depth1 = "1+0-[0]0"

func unitConfig() Config {
	return Config{Origin: Point{}, Heading: 0, SegmentLength: 1}
}

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestInterpret_ZeroAngleReferenceTrace(t *testing.T) {
	var rec Recorder
	st, err := Interpret(depth1, 0, unitConfig(), &rec)
	require.NoError(t, err)

	want := []Segment{
		{From: Point{0, 0}, To: Point{1, 0}}, // 1
		{From: Point{1, 0}, To: Point{2, 0}}, // 0 inside +-
		{From: Point{1, 0}, To: Point{2, 0}}, // 0 inside []
		{From: Point{1, 0}, To: Point{2, 0}}, // trailing 0
	}
	require.Len(t, rec.Segments, len(want))
	for i := range want {
		assertPoint(t, want[i].From, rec.Segments[i].From)
		assertPoint(t, want[i].To, rec.Segments[i].To)
		assert.InDelta(t, 0, rec.Segments[i].To.Y, 1e-12, "segment %d leaves the x axis", i)
	}
	assert.Equal(t, Stats{Segments: 4, MaxDepth: 1, Unclosed: 0}, st)
}

func TestInterpret_RightAngleBranch(t *testing.T) {
	var rec Recorder
	_, err := Interpret(depth1, math.Pi/2, unitConfig(), &rec)
	require.NoError(t, err)
	require.Len(t, rec.Segments, 4)

	stem := rec.Segments[0]
	branch := rec.Segments[2]
	after := rec.Segments[3]

	heading := func(s Segment) float64 { return math.Atan2(s.To.Y-s.From.Y, s.To.X-s.From.X) }

	// The branch leaves from the stem tip, turned by exactly the branch angle.
	assertPoint(t, stem.To, branch.From)
	assert.InDelta(t, math.Pi/2, heading(branch)-heading(stem), 1e-9)

	// ] restores the branch point and mirrors the turn.
	assertPoint(t, stem.To, after.From)
	assert.InDelta(t, -math.Pi/2, heading(after)-heading(stem), 1e-9)
}

func TestInterpret_MarkRestoresWithoutTurning(t *testing.T) {
	var rec Recorder
	_, err := Interpret("0+00-0", 1.0, unitConfig(), &rec)
	require.NoError(t, err)
	require.Len(t, rec.Segments, 4)
	assertPoint(t, Point{3, 0}, rec.Segments[2].To)
	assertPoint(t, Point{1, 0}, rec.Segments[3].From)
	assertPoint(t, Point{2, 0}, rec.Segments[3].To)
}

func TestInterpret_ReplayIsIdentical(t *testing.T) {
	instr := "11+1+0-[0]0-[1+0-[0]0]1+0-[0]0"
	cfg := DefaultConfig(640, 480)

	var a, b Recorder
	_, err := Interpret(instr, 0.7, cfg, &a)
	require.NoError(t, err)
	_, err = Interpret(instr, 0.7, cfg, &b)
	require.NoError(t, err)
	assert.Equal(t, a.Segments, b.Segments)
}

func TestInterpret_StackEndsEmpty(t *testing.T) {
	for _, instr := range []string{"", "0", depth1, "[[0]+[0]-]", "11+1+0-[0]0-[1+0-[0]0]1+0-[0]0"} {
		st, err := Interpret(instr, 0.3, unitConfig(), nil)
		require.NoError(t, err)
		assert.Zero(t, st.Unclosed, "instr %q", instr)
	}
}

func TestInterpret_IgnoresUnknownSymbols(t *testing.T) {
	var rec Recorder
	st, err := Interpret("0xF 0", 0, unitConfig(), &rec)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Segments)
	assertPoint(t, Point{2, 0}, rec.Segments[1].To)
}

func TestInterpret_Underflow(t *testing.T) {
	tests := []struct {
		instr string
		index int
		sym   byte
	}{
		{instr: "0]", index: 1, sym: ']'},
		{instr: "[0]]", index: 3, sym: ']'},
		{instr: "00-", index: 2, sym: '-'},
	}
	for _, tt := range tests {
		var rec Recorder
		st, err := Interpret(tt.instr, 0.5, unitConfig(), &rec)
		require.ErrorIs(t, err, ErrStackUnderflow, "instr %q", tt.instr)

		var ue *UnderflowError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, tt.index, ue.Index)
		assert.Equal(t, tt.sym, ue.Symbol)
		assert.Equal(t, len(rec.Segments), st.Segments)
	}
}

func TestInterpret_InvalidSegmentLength(t *testing.T) {
	for _, l := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Interpret("0", 0, Config{SegmentLength: l}, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig, "length %v", l)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(320, 240)
	assert.Equal(t, Point{X: 160, Y: 220}, cfg.Origin)

	var rec Recorder
	_, err := Interpret("0", 0, cfg, &rec)
	require.NoError(t, err)
	// Up on a y-down surface.
	assertPoint(t, Point{160, 215}, rec.Segments[0].To)
}

func TestStack(t *testing.T) {
	var s Stack
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(State{Heading: 1})
	s.Push(State{Heading: 2})
	assert.Equal(t, 2, s.Len())

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2.0, top.Heading)
	assert.Equal(t, 1, s.Len())
}

func TestInterpret_LineSinkFunc(t *testing.T) {
	var total float64
	sink := LineSinkFunc(func(x0, y0, x1, y1 float64) {
		total += math.Hypot(x1-x0, y1-y0)
	})
	st, err := Interpret(depth1, 0.4, Config{SegmentLength: 2.5}, sink)
	require.NoError(t, err)
	assert.InDelta(t, 2.5*float64(st.Segments), total, 1e-9)
}
