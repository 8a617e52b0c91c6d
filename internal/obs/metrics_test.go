package obs

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncApplied()
	m.IncApplied()
	m.IncPublished()
	m.IncCapacityError()
	m.IncUnknownVenue()
	m.IncMalformedFrame()

	snap := m.Snapshot()
	if snap.UpdatesApplied != 2 {
		t.Fatalf("applied = %d", snap.UpdatesApplied)
	}
	if snap.Published != 1 || snap.CapacityErrors != 1 || snap.UnknownVenues != 1 || snap.MalformedFrames != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.IncApplied()
	m.ObserveApply(time.Millisecond)
	if snap := m.Snapshot(); snap.UpdatesApplied != 0 {
		t.Fatalf("nil snapshot = %+v", snap)
	}
}

func TestLatencyStats(t *testing.T) {
	var l LatencyStats
	if snap := l.Snapshot(); snap.Count != 0 {
		t.Fatalf("empty snapshot = %+v", snap)
	}

	l.Observe(2 * time.Millisecond)
	l.Observe(4 * time.Millisecond)
	l.Observe(6 * time.Millisecond)

	snap := l.Snapshot()
	if snap.Count != 3 {
		t.Fatalf("count = %d", snap.Count)
	}
	if snap.Min != 2*time.Millisecond {
		t.Fatalf("min = %v", snap.Min)
	}
	if snap.Max != 6*time.Millisecond {
		t.Fatalf("max = %v", snap.Max)
	}
	if snap.Avg != 4*time.Millisecond {
		t.Fatalf("avg = %v", snap.Avg)
	}
}
