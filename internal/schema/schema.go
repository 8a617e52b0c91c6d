package schema

// PointScale is the number of decimal places carried by Price and Qty.
const PointScale = 8

// PointUnit is the integer value of 1.0 at PointScale.
const PointUnit = 100_000_000

// Price is a signed scaled integer, PointScale decimal places.
type Price int64

// Qty is an unsigned scaled integer, PointScale decimal places.
// A quantity of zero means the level is absent.
type Qty uint64

// Timestamp is nanoseconds since the unix epoch.
type Timestamp uint64

// VenueID is the numeric identifier for a venue. Zero is never valid.
type VenueID uint8

// SymbolID is the numeric identifier for an instrument.
type SymbolID uint32

// Side marks one half of a book. The values match the wire tags.
type Side uint8

const (
	SideBid Side = 1
	SideAsk Side = 2
)

// IsValid reports whether the side carries a known tag.
func (s Side) IsValid() bool {
	return s == SideBid || s == SideAsk
}

func (s Side) String() string {
	switch s {
	case SideBid:
		return "bid"
	case SideAsk:
		return "ask"
	default:
		return "unknown"
	}
}

// Update is one authoritative statement of quantity at a price on one venue.
// Qty zero removes the level. Snapshot is carried through unchanged; full
// book resets are the producer's concern.
type Update struct {
	Timestamp Timestamp
	Venue     VenueID
	Symbol    SymbolID
	Side      Side
	Price     Price
	Qty       Qty
	Snapshot  uint8
}
