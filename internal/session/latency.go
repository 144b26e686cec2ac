package session

import (
	"math"
	"slices"
	"time"
)

// LatencyWindowSize bounds the number of turn samples kept per session.
const LatencyWindowSize = 200

// LatencyWindow is a bounded ring of narration turn durations.
type LatencyWindow struct {
	samples []time.Duration
	next    int
	full    bool
}

func NewLatencyWindow(size int) *LatencyWindow {
	return &LatencyWindow{samples: make([]time.Duration, size)}
}

func (w *LatencyWindow) Add(d time.Duration) {
	w.samples[w.next] = d
	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.full = true
	}
}

func (w *LatencyWindow) Len() int {
	if w.full {
		return len(w.samples)
	}
	return w.next
}

// Stats returns the running average and nearest-rank 90th percentile
// (index ceil(0.9*n)-1, clamped to ≥0) over the window.
func (w *LatencyWindow) Stats() LatencyStats {
	n := w.Len()
	if n == 0 {
		return LatencyStats{}
	}
	window := slices.Clone(w.samples[:n])
	var sum time.Duration
	for _, d := range window {
		sum += d
	}
	slices.Sort(window)
	idx := int(math.Ceil(0.9*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	return LatencyStats{
		AverageMs: float64(sum.Milliseconds()) / float64(n),
		P90Ms:     float64(window[idx].Milliseconds()),
		Samples:   n,
	}
}
