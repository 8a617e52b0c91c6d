package book

import (
	"main/internal/errors"
	"main/internal/schema"
	"main/pkg/exception"
)

// AggregateBook owns one VenueBook per configured venue and derives the
// cross-venue imbalance signal. Routing is by venue id; an update never
// touches more than one book.
type AggregateBook struct {
	books   []*VenueBook
	weights []float64
}

// NewAggregateBook builds one fixed-capacity book per registry venue. The
// venue weights are taken from the registry at construction time.
func NewAggregateBook(reg *schema.Registry, levelCapacity int) *AggregateBook {
	books := make([]*VenueBook, reg.VenueCount())
	for i := range books {
		books[i] = NewVenueBook(levelCapacity)
	}
	return &AggregateBook{
		books:   books,
		weights: reg.Weights(),
	}
}

// OnUpdate routes the update to the owning venue book.
func (a *AggregateBook) OnUpdate(u schema.Update) error {
	b, ok := a.Book(u.Venue)
	if !ok {
		return errors.Wrapf(exception.ErrUnknownVenue, "venue id %d", u.Venue)
	}
	return b.Apply(u.Side, u.Price, u.Qty)
}

// Book returns the venue book by id.
func (a *AggregateBook) Book(id schema.VenueID) (*VenueBook, bool) {
	if id == 0 || int(id) > len(a.books) {
		return nil, false
	}
	return a.books[id-1], true
}

// VenueCount returns the number of owned venue books.
func (a *AggregateBook) VenueCount() int {
	return len(a.books)
}

// WeightedNOBI computes the venue-weighted normalized order book imbalance:
// sum of weight*(bidVol-askVol) over sum of weight*(bidVol+askVol). Zero
// total depth yields exactly zero. The value stays in [-1, 1] for
// non-negative weights and volumes; no clamping is applied.
func (a *AggregateBook) WeightedNOBI() float64 {
	var flow, depth float64
	for i, b := range a.books {
		w := a.weights[i]
		if w == 0 {
			continue
		}
		bid := float64(b.TotalVolume(schema.SideBid))
		ask := float64(b.TotalVolume(schema.SideAsk))
		flow += w * (bid - ask)
		depth += w * (bid + ask)
	}
	if depth == 0 {
		return 0
	}
	return flow / depth
}

// Reset clears every venue book.
func (a *AggregateBook) Reset() {
	for _, b := range a.books {
		b.Reset()
	}
}
