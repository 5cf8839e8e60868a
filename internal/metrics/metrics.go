// Package metrics exports frame driver counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder groups the collectors for one frame driver. A nil *Recorder is a
// valid no-op recorder.
type Recorder struct {
	reg *prometheus.Registry

	frames       prometheus.Counter
	failures     prometheus.Counter
	segments     prometheus.Counter
	angle        prometheus.Gauge
	instructions prometheus.Gauge
	frameSeconds prometheus.Histogram
}

// New creates a Recorder on its own registry, with Go runtime collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsystree_frames_total",
			Help: "Frames rendered to completion.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsystree_frame_failures_total",
			Help: "Frames discarded because interpretation failed.",
		}),
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsystree_segments_total",
			Help: "Line segments emitted by the turtle.",
		}),
		angle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsystree_branch_angle_radians",
			Help: "Branch angle of the last rendered frame.",
		}),
		instructions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsystree_instruction_symbols",
			Help: "Length of the expanded instruction string.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lsystree_frame_duration_seconds",
			Help:    "Time spent clearing, interpreting and rasterizing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	reg.MustRegister(
		r.frames, r.failures, r.segments, r.angle, r.instructions, r.frameSeconds,
		collectors.NewGoCollector(),
	)
	return r
}

// Instructions records the instruction string length.
func (r *Recorder) Instructions(n int) {
	if r == nil {
		return
	}
	r.instructions.Set(float64(n))
}

// Frame records one completed frame.
func (r *Recorder) Frame(d time.Duration, segments int, angle float64) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.segments.Add(float64(segments))
	r.angle.Set(angle)
	r.frameSeconds.Observe(d.Seconds())
}

// FrameFailed records one discarded frame.
func (r *Recorder) FrameFailed() {
	if r == nil {
		return
	}
	r.failures.Inc()
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
