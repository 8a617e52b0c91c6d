package book

import (
	"sort"

	"main/internal/schema"
	"main/pkg/exception"
)

// PriceLevel is resting quantity at a price. Qty zero means absent.
type PriceLevel struct {
	Price schema.Price
	Qty   schema.Qty
}

// levelTable is one side of a venue book. Slots are allocated once at
// construction; levels are kept sorted ascending by price so the best level
// sits at one end and lookups are binary searches instead of full scans.
// Inserts shift within the pre-allocated array and never grow it.
type levelTable struct {
	side   schema.Side
	levels []PriceLevel
	used   int

	// cached holds the last computed best level. Any mutation clears
	// cacheValid before the next read.
	cached     PriceLevel
	cachedSet  bool
	cacheValid bool
}

func newLevelTable(side schema.Side, capacity int) levelTable {
	return levelTable{
		side:   side,
		levels: make([]PriceLevel, capacity),
	}
}

// apply overwrites the level at price, inserts a new level, or removes the
// level when qty is zero. Inserting into a full table fails without
// touching any other level.
func (t *levelTable) apply(price schema.Price, qty schema.Qty) error {
	active := t.levels[:t.used]
	idx := sort.Search(t.used, func(i int) bool { return active[i].Price >= price })

	if idx < t.used && active[idx].Price == price {
		if qty == 0 {
			copy(active[idx:], active[idx+1:])
			t.used--
			t.levels[t.used] = PriceLevel{}
		} else {
			active[idx].Qty = qty
		}
		t.cacheValid = false
		return nil
	}

	if qty == 0 {
		// Removing a level that is already absent.
		return nil
	}
	if t.used == len(t.levels) {
		return exception.ErrBookCapacityExceeded
	}

	copy(t.levels[idx+1:t.used+1], t.levels[idx:t.used])
	t.levels[idx] = PriceLevel{Price: price, Qty: qty}
	t.used++
	t.cacheValid = false
	return nil
}

// best returns the top level. The cached value answers repeated reads in
// O(1); after a mutation the first read recomputes and repopulates it.
func (t *levelTable) best() (PriceLevel, bool) {
	if t.cacheValid {
		return t.cached, t.cachedSet
	}

	if t.used == 0 {
		t.cached, t.cachedSet, t.cacheValid = PriceLevel{}, false, true
		return PriceLevel{}, false
	}

	var top PriceLevel
	if t.side == schema.SideBid {
		top = t.levels[t.used-1]
	} else {
		top = t.levels[0]
	}
	t.cached, t.cachedSet, t.cacheValid = top, true, true
	return top, true
}

// totalVolume sums resting quantity across the side.
func (t *levelTable) totalVolume() schema.Qty {
	var sum schema.Qty
	for i := 0; i < t.used; i++ {
		sum += t.levels[i].Qty
	}
	return sum
}

func (t *levelTable) reset() {
	for i := 0; i < t.used; i++ {
		t.levels[i] = PriceLevel{}
	}
	t.used = 0
	t.cached, t.cachedSet, t.cacheValid = PriceLevel{}, false, false
}
