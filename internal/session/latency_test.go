package session

import (
	"testing"
	"time"
)

func TestLatencyP90NearestRank(t *testing.T) {
	cases := []struct {
		name    string
		samples []time.Duration
		wantP90 float64
		wantAvg float64
	}{
		{
			name:    "five samples",
			samples: []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond, 50 * time.Millisecond},
			wantP90: 50, // ceil(0.9*5)-1 = 4
			wantAvg: 30,
		},
		{
			name:    "single sample",
			samples: []time.Duration{120 * time.Millisecond},
			wantP90: 120,
			wantAvg: 120,
		},
		{
			name:    "ten samples",
			samples: []time.Duration{10e6, 20e6, 30e6, 40e6, 50e6, 60e6, 70e6, 80e6, 90e6, 100e6},
			wantP90: 90, // ceil(0.9*10)-1 = 8
			wantAvg: 55,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewLatencyWindow(LatencyWindowSize)
			for _, s := range tc.samples {
				w.Add(s)
			}
			stats := w.Stats()
			if stats.P90Ms != tc.wantP90 {
				t.Fatalf("p90: want %v, got %v", tc.wantP90, stats.P90Ms)
			}
			if stats.AverageMs != tc.wantAvg {
				t.Fatalf("avg: want %v, got %v", tc.wantAvg, stats.AverageMs)
			}
			if stats.Samples != len(tc.samples) {
				t.Fatalf("samples: want %d, got %d", len(tc.samples), stats.Samples)
			}
		})
	}
}

func TestLatencyWindowIsBounded(t *testing.T) {
	w := NewLatencyWindow(LatencyWindowSize)
	for i := 0; i < LatencyWindowSize+50; i++ {
		w.Add(time.Duration(i) * time.Millisecond)
	}
	if w.Len() != LatencyWindowSize {
		t.Fatalf("want window capped at %d, got %d", LatencyWindowSize, w.Len())
	}
	stats := w.Stats()
	if stats.Samples != LatencyWindowSize {
		t.Fatalf("stats samples: want %d, got %d", LatencyWindowSize, stats.Samples)
	}
	// Oldest 50 samples were overwritten, so the minimum surviving
	// sample is 50ms and the average reflects the newest 200 only.
	wantAvg := float64(50+LatencyWindowSize+49) / 2
	if stats.AverageMs != wantAvg {
		t.Fatalf("avg after wrap: want %v, got %v", wantAvg, stats.AverageMs)
	}
}

func TestLatencyEmptyWindow(t *testing.T) {
	w := NewLatencyWindow(LatencyWindowSize)
	stats := w.Stats()
	if stats.Samples != 0 || stats.AverageMs != 0 || stats.P90Ms != 0 {
		t.Fatalf("empty window should be all zeros, got %+v", stats)
	}
}
