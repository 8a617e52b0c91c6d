package book

import (
	"main/internal/schema"
	"main/pkg/exception"
)

// DefaultLevelCapacity bounds each side of a venue book when the
// configuration does not say otherwise.
const DefaultLevelCapacity = 1000

// VenueBook is the price level state of one venue for one instrument.
// It is owned by a single writer; see Engine for the sequencing rules.
type VenueBook struct {
	bids levelTable
	asks levelTable
}

// NewVenueBook allocates both sides up front. The book never grows.
func NewVenueBook(capacity int) *VenueBook {
	if capacity <= 0 {
		capacity = DefaultLevelCapacity
	}
	return &VenueBook{
		bids: newLevelTable(schema.SideBid, capacity),
		asks: newLevelTable(schema.SideAsk, capacity),
	}
}

// Apply sets the quantity at a price on one side. Qty zero removes the
// level. The best cache of the mutated side is invalidated.
func (b *VenueBook) Apply(side schema.Side, price schema.Price, qty schema.Qty) error {
	switch side {
	case schema.SideBid:
		return b.bids.apply(price, qty)
	case schema.SideAsk:
		return b.asks.apply(price, qty)
	default:
		return exception.ErrInvalidSide
	}
}

// Best returns the highest bid or lowest ask with resting quantity.
func (b *VenueBook) Best(side schema.Side) (PriceLevel, bool) {
	if side == schema.SideBid {
		return b.bids.best()
	}
	return b.asks.best()
}

func (b *VenueBook) BestBid() (PriceLevel, bool) {
	return b.bids.best()
}

func (b *VenueBook) BestAsk() (PriceLevel, bool) {
	return b.asks.best()
}

// TotalVolume sums resting quantity on one side. O(capacity), intended for
// signal weighting rather than the per-tick hot path.
func (b *VenueBook) TotalVolume(side schema.Side) schema.Qty {
	if side == schema.SideBid {
		return b.bids.totalVolume()
	}
	return b.asks.totalVolume()
}

// Reset clears both sides and their caches.
func (b *VenueBook) Reset() {
	b.bids.reset()
	b.asks.reset()
}
