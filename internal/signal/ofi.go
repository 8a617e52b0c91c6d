// Package signal derives order flow imbalance values from successive
// best-level observations of one book. It reconstructs no depth; only the
// top of book drives the signal, which keeps the per-tick cost flat.
package signal

import "main/internal/schema"

// OFITracker accumulates signed volume-at-best events over a fixed-length
// window per side. Memory is bounded at construction and the oldest event
// is evicted first once the window is full.
type OFITracker struct {
	bid sideWindow
	ask sideWindow
}

// sideWindow is a fixed-capacity ring of past events plus the last observed
// best level of that side.
type sideWindow struct {
	events []float64
	head   int
	size   int

	lastPrice schema.Price
	lastQty   schema.Qty
	seen      bool
}

// NewOFITracker allocates both windows up front.
func NewOFITracker(window int) *OFITracker {
	if window <= 0 {
		window = 1
	}
	return &OFITracker{
		bid: sideWindow{events: make([]float64, window)},
		ask: sideWindow{events: make([]float64, window)},
	}
}

// Observe feeds the current best bid and ask and returns the updated OFI.
// The first observation contributes zero; afterwards a price improvement
// contributes the new quantity, a deterioration the negated previous
// quantity, and an unchanged price the quantity delta.
func (t *OFITracker) Observe(bidPrice schema.Price, bidQty schema.Qty, askPrice schema.Price, askQty schema.Qty) float64 {
	var bidEvent, askEvent float64

	if t.bid.seen {
		switch {
		case bidPrice > t.bid.lastPrice:
			bidEvent = float64(bidQty)
		case bidPrice < t.bid.lastPrice:
			bidEvent = -float64(t.bid.lastQty)
		default:
			bidEvent = float64(bidQty) - float64(t.bid.lastQty)
		}
	}
	if t.ask.seen {
		switch {
		case askPrice < t.ask.lastPrice:
			askEvent = float64(askQty)
		case askPrice > t.ask.lastPrice:
			askEvent = -float64(t.ask.lastQty)
		default:
			askEvent = float64(askQty) - float64(t.ask.lastQty)
		}
	}

	t.bid.push(bidEvent)
	t.ask.push(askEvent)

	t.bid.lastPrice, t.bid.lastQty, t.bid.seen = bidPrice, bidQty, true
	t.ask.lastPrice, t.ask.lastQty, t.ask.seen = askPrice, askQty, true

	return t.OFI()
}

// OFI is the windowed sum of bid events minus the windowed sum of ask
// events.
func (t *OFITracker) OFI() float64 {
	return t.bid.sum() - t.ask.sum()
}

// NOBI is the depth-normalized OFI. Zero total depth yields exactly zero.
func (t *OFITracker) NOBI(totalBidDepth, totalAskDepth schema.Qty) float64 {
	depth := float64(totalBidDepth) + float64(totalAskDepth)
	if depth == 0 {
		return 0
	}
	return t.OFI() / depth
}

// Reset clears both windows and the last-observed references. The next
// Observe behaves like the first ever.
func (t *OFITracker) Reset() {
	t.bid.reset()
	t.ask.reset()
}

func (w *sideWindow) push(event float64) {
	if w.size == len(w.events) {
		w.events[w.head] = event
		w.head = (w.head + 1) % len(w.events)
		return
	}
	w.events[(w.head+w.size)%len(w.events)] = event
	w.size++
}

func (w *sideWindow) sum() float64 {
	var s float64
	for i := 0; i < w.size; i++ {
		s += w.events[(w.head+i)%len(w.events)]
	}
	return s
}

func (w *sideWindow) reset() {
	for i := range w.events {
		w.events[i] = 0
	}
	w.head, w.size = 0, 0
	w.lastPrice, w.lastQty, w.seen = 0, 0, false
}
