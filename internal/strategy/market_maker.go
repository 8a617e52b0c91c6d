// Package strategy holds tick observers that turn signals into quotes.
package strategy

import (
	"github.com/yanun0323/logs"

	"main/internal/core"
	"main/internal/schema"
)

// Quote is a two-sided price the maker would post.
type Quote struct {
	BidPrice schema.Price
	AskPrice schema.Price
	Qty      schema.Qty
}

// MarketMaker quotes symmetrically around the mid of the venue that just
// updated. It only logs its quotes; order routing lives elsewhere.
type MarketMaker struct {
	spreadBps float64
	orderQty  schema.Qty
}

func NewMarketMaker(spreadBps float64, orderQty schema.Qty) *MarketMaker {
	return &MarketMaker{spreadBps: spreadBps, orderQty: orderQty}
}

// QuoteFor centers a quote on the mid of the given bests.
func (m *MarketMaker) QuoteFor(bid, ask schema.Price) Quote {
	mid := (bid + ask) / 2
	half := schema.Price(float64(mid) * m.spreadBps / 10_000 / 2)
	return Quote{
		BidPrice: mid - half,
		AskPrice: mid + half,
		Qty:      m.orderQty,
	}
}

func (m *MarketMaker) OnTick(t core.Tick) {
	if !t.HasBestBid || !t.HasBestAsk {
		return
	}
	q := m.QuoteFor(t.BestBid.Price, t.BestAsk.Price)

	buf := make([]byte, 0, 64)
	buf = q.BidPrice.AppendString(buf)
	buf = append(buf, " / "...)
	buf = q.AskPrice.AppendString(buf)
	logs.Infof("venue %d quote %s qty %s (wnobi %.4f)", t.Update.Venue, buf, q.Qty.String(), t.WeightedNOBI)
}
