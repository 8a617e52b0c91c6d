package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObserveFirstObservationContributesZero(t *testing.T) {
	tr := NewOFITracker(10)
	require.Zero(t, tr.Observe(100, 10, 101, 10))
}

func TestObserveBidImprovement(t *testing.T) {
	tr := NewOFITracker(10)
	tr.Observe(100, 10, 101, 10)

	// Bid price rose with added size while the ask retreated.
	got := tr.Observe(101, 15, 102, 10)
	require.Greater(t, got, 0.0)
}

func TestObserveBidDeterioration(t *testing.T) {
	tr := NewOFITracker(10)
	tr.Observe(100, 10, 101, 10)

	got := tr.Observe(99, 10, 100, 10)
	require.Less(t, got, 0.0)
}

func TestObserveUnchangedPriceUsesQtyDelta(t *testing.T) {
	tr := NewOFITracker(10)
	tr.Observe(100, 10, 101, 10)

	// +5 on the bid, -3 on the ask: OFI = 5 - (-3) = 8.
	got := tr.Observe(100, 15, 101, 7)
	require.InDelta(t, 8.0, got, 1e-12)
}

func TestWindowEvictsOldestFirst(t *testing.T) {
	tr := NewOFITracker(2)
	tr.Observe(100, 10, 200, 10)

	// Three unchanged-price deltas; only the last two may remain.
	tr.Observe(100, 11, 200, 10) // bid event +1
	tr.Observe(100, 13, 200, 10) // bid event +2
	tr.Observe(100, 16, 200, 10) // bid event +3

	require.InDelta(t, 5.0, tr.OFI(), 1e-12)
}

func TestNOBINormalizesByDepth(t *testing.T) {
	tr := NewOFITracker(10)
	tr.Observe(100, 10, 101, 10)
	tr.Observe(101, 15, 102, 10)

	nobi := tr.NOBI(100, 100)
	require.GreaterOrEqual(t, nobi, -1.0)
	require.LessOrEqual(t, nobi, 1.0)
	require.InDelta(t, tr.OFI()/200, nobi, 1e-12)

	require.Zero(t, tr.NOBI(0, 0))
}

func TestResetBehavesLikeFreshTracker(t *testing.T) {
	tr := NewOFITracker(4)
	tr.Observe(100, 10, 101, 10)
	tr.Observe(105, 20, 106, 20)
	require.NotZero(t, tr.OFI())

	tr.Reset()
	require.Zero(t, tr.OFI())

	// One update after reset has no prior reference, so it contributes
	// nothing.
	require.Zero(t, tr.Observe(500, 99, 501, 99))
}
