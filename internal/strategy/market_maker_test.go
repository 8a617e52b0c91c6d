package strategy

import (
	"testing"

	"main/internal/schema"
)

func TestQuoteForSymmetricSpread(t *testing.T) {
	m := NewMarketMaker(10, schema.Qty(schema.PointUnit/10))

	bid := schema.Price(99 * schema.PointUnit)
	ask := schema.Price(101 * schema.PointUnit)
	q := m.QuoteFor(bid, ask)

	mid := schema.Price(100 * schema.PointUnit)
	// 10 bps total spread leaves 5 bps each side of mid.
	half := schema.Price(float64(mid) * 10 / 10_000 / 2)
	if q.BidPrice != mid-half {
		t.Fatalf("bid = %s, want %s", q.BidPrice, (mid - half))
	}
	if q.AskPrice != mid+half {
		t.Fatalf("ask = %s, want %s", q.AskPrice, (mid + half))
	}
	if q.BidPrice >= q.AskPrice {
		t.Fatalf("quote crossed: %s >= %s", q.BidPrice, q.AskPrice)
	}
	if q.Qty != schema.Qty(schema.PointUnit/10) {
		t.Fatalf("qty = %s", q.Qty)
	}
}

func TestQuoteForZeroSpread(t *testing.T) {
	m := NewMarketMaker(0, schema.Qty(schema.PointUnit))
	q := m.QuoteFor(100*schema.PointUnit, 100*schema.PointUnit)
	if q.BidPrice != q.AskPrice {
		t.Fatalf("expected flat quote, got %s / %s", q.BidPrice, q.AskPrice)
	}
}
