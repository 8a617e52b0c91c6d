package ingest

import (
	"github.com/yanun0323/decimal"

	"main/internal/errors"
	"main/internal/schema"
	"main/pkg/exception"
)

// JSONTick is the text-frame shape accepted alongside binary frames. Venues
// that cannot emit the fixed binary layout send these instead.
type JSONTick struct {
	Timestamp uint64          `json:"ts"`
	Venue     string          `json:"venue"`
	Symbol    uint32          `json:"symbol"`
	Side      string          `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
	Snapshot  uint8           `json:"snapshot"`
}

// Normalizer maps venue names and decimal strings onto the scaled schema.
type Normalizer struct {
	reg *schema.Registry
}

func NewNormalizer(reg *schema.Registry) *Normalizer {
	return &Normalizer{reg: reg}
}

// Normalize converts a text tick into a scaled update. The venue must be
// registered and price/qty must fit the 8-decimal fixed point.
func (n *Normalizer) Normalize(t JSONTick) (schema.Update, error) {
	venueID, ok := n.reg.VenueIDByName(t.Venue)
	if !ok {
		return schema.Update{}, errors.Wrapf(exception.ErrUnknownVenue, "venue %q", t.Venue)
	}

	var side schema.Side
	switch t.Side {
	case "bid", "buy":
		side = schema.SideBid
	case "ask", "sell":
		side = schema.SideAsk
	default:
		return schema.Update{}, errors.Wrapf(exception.ErrInvalidSideTag, "side %q", t.Side)
	}

	price, err := schema.ParsePrice(t.Price.String())
	if err != nil {
		return schema.Update{}, errors.Wrap(err, "parse price")
	}
	qty, err := schema.ParseQty(t.Qty.String())
	if err != nil {
		return schema.Update{}, errors.Wrap(err, "parse qty")
	}

	return schema.Update{
		Timestamp: schema.Timestamp(t.Timestamp),
		Venue:     venueID,
		Symbol:    schema.SymbolID(t.Symbol),
		Side:      side,
		Price:     price,
		Qty:       qty,
		Snapshot:  t.Snapshot,
	}, nil
}
