package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects lightweight counters and latency stats for the update
// path. All methods are safe for concurrent use and nil receivers.
type Metrics struct {
	updatesApplied  uint64
	capacityErrors  uint64
	unknownVenues   uint64
	malformedFrames uint64
	published       uint64

	applyLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	UpdatesApplied  uint64
	CapacityErrors  uint64
	UnknownVenues   uint64
	MalformedFrames uint64
	Published       uint64
	ApplyLatency    LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncApplied records a successfully applied update.
func (m *Metrics) IncApplied() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.updatesApplied, 1)
}

// IncCapacityError records an apply rejected by a full level table.
func (m *Metrics) IncCapacityError() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.capacityErrors, 1)
}

// IncUnknownVenue records an update for an unconfigured venue.
func (m *Metrics) IncUnknownVenue() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.unknownVenues, 1)
}

// IncMalformedFrame records a frame rejected at the decode boundary.
func (m *Metrics) IncMalformedFrame() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.malformedFrames, 1)
}

// IncPublished records a frame offered to the distribution broker.
func (m *Metrics) IncPublished() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.published, 1)
}

// ObserveApply measures one pass through the apply-and-publish path.
func (m *Metrics) ObserveApply(d time.Duration) {
	if m == nil {
		return
	}
	m.applyLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		UpdatesApplied:  atomic.LoadUint64(&m.updatesApplied),
		CapacityErrors:  atomic.LoadUint64(&m.capacityErrors),
		UnknownVenues:   atomic.LoadUint64(&m.unknownVenues),
		MalformedFrames: atomic.LoadUint64(&m.malformedFrames),
		Published:       atomic.LoadUint64(&m.published),
		ApplyLatency:    m.applyLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
