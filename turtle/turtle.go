// Package turtle walks an L-system instruction string and turns it into line
// segments.
//
// The turtle carries a position and a heading. A single LIFO stack, local to one
// Interpret call, holds the states saved by [ and +. Nothing survives the call,
// so the same instruction string can be replayed every frame with a different
// branch angle.
package turtle

import (
	"errors"
	"fmt"
	"math"
)

// Point is a 2D position in surface coordinates (y grows downward on screens).
type Point struct {
	X, Y float64
}

// State is the turtle's pen.
type State struct {
	Pos     Point
	Heading float64 // radians
}

// Config fixes the starting pen and the stride of one segment.
type Config struct {
	Origin        Point
	Heading       float64
	SegmentLength float64
}

// DefaultConfig places the root near the bottom center of a width x height
// surface, pointing up.
func DefaultConfig(width, height int) Config {
	return Config{
		Origin:        Point{X: float64(width) / 2, Y: float64(height) - 20},
		Heading:       3 * math.Pi / 2,
		SegmentLength: 5,
	}
}

// LineSink receives segments in drawing order.
type LineSink interface {
	DrawLine(x0, y0, x1, y1 float64)
}

// LineSinkFunc adapts a function to LineSink.
type LineSinkFunc func(x0, y0, x1, y1 float64)

func (f LineSinkFunc) DrawLine(x0, y0, x1, y1 float64) { f(x0, y0, x1, y1) }

var (
	ErrStackUnderflow = errors.New("turtle: stack underflow")
	ErrInvalidConfig  = errors.New("turtle: invalid config")
)

// UnderflowError reports a pop on an empty stack.
type UnderflowError struct {
	Index  int
	Symbol byte
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("turtle: stack underflow at symbol %d (%q)", e.Index, e.Symbol)
}

func (e *UnderflowError) Unwrap() error { return ErrStackUnderflow }

// Stats summarizes one pass.
type Stats struct {
	Segments int
	MaxDepth int
	// Unclosed is the stack depth left when the pass ended. Well-bracketed
	// input always leaves 0.
	Unclosed int
}

// Interpret draws instr onto sink. branchAngle is added on [ and subtracted
// from the restored heading on ]. Unknown symbols are ignored.
//
// On underflow no further segments are drawn; segments already sent to sink
// are not retracted, so callers presenting frames must discard the frame.
func Interpret(instr string, branchAngle float64, cfg Config, sink LineSink) (Stats, error) {
	if !(cfg.SegmentLength > 0) || math.IsInf(cfg.SegmentLength, 0) {
		return Stats{}, fmt.Errorf("%w: segment length %v", ErrInvalidConfig, cfg.SegmentLength)
	}

	var (
		st    Stats
		stack Stack
	)
	cur := State{Pos: cfg.Origin, Heading: cfg.Heading}

	for i := 0; i < len(instr); i++ {
		switch c := instr[i]; c {
		case '0', '1':
			cur.Pos = drawRay(sink, cur.Pos, cur.Heading, cfg.SegmentLength)
			st.Segments++
		case '[':
			stack.Push(cur)
			cur.Heading += branchAngle
		case ']':
			saved, ok := stack.Pop()
			if !ok {
				st.Unclosed = stack.Len()
				return st, &UnderflowError{Index: i, Symbol: c}
			}
			cur.Pos = saved.Pos
			cur.Heading = saved.Heading - branchAngle
		case '+':
			stack.Push(cur)
		case '-':
			saved, ok := stack.Pop()
			if !ok {
				st.Unclosed = stack.Len()
				return st, &UnderflowError{Index: i, Symbol: c}
			}
			cur = saved
		default:
			continue
		}
		if d := stack.Len(); d > st.MaxDepth {
			st.MaxDepth = d
		}
	}
	st.Unclosed = stack.Len()
	return st, nil
}

func drawRay(sink LineSink, from Point, heading, length float64) Point {
	to := Point{
		X: from.X + length*math.Cos(heading),
		Y: from.Y + length*math.Sin(heading),
	}
	if sink != nil {
		sink.DrawLine(from.X, from.Y, to.X, to.Y)
	}
	return to
}
