package turtle

// Segment is one recorded line.
type Segment struct {
	From, To Point
}

// Recorder is a LineSink that keeps every segment in order.
type Recorder struct {
	Segments []Segment
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 float64) {
	r.Segments = append(r.Segments, Segment{From: Point{X: x0, Y: y0}, To: Point{X: x1, Y: y1}})
}
