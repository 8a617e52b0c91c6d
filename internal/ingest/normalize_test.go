package ingest

import (
	"encoding/json"
	"testing"

	"main/internal/errors"
	"main/internal/schema"
	"main/pkg/exception"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	reg := schema.NewRegistry()
	if _, err := reg.AddVenue("binance", 0.6); err != nil {
		t.Fatalf("add venue: %v", err)
	}
	if _, err := reg.AddVenue("bybit", 0.4); err != nil {
		t.Fatalf("add venue: %v", err)
	}
	return NewNormalizer(reg)
}

func TestNormalizeTick(t *testing.T) {
	n := newTestNormalizer(t)

	var tick JSONTick
	raw := `{"ts": 1700000000000000000, "venue": "bybit", "symbol": 7, "side": "bid", "price": "50123.45", "qty": "0.25", "snapshot": 1}`
	if err := json.Unmarshal([]byte(raw), &tick); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	u, err := n.Normalize(tick)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := schema.Update{
		Timestamp: 1_700_000_000_000_000_000,
		Venue:     2,
		Symbol:    7,
		Side:      schema.SideBid,
		Price:     5_012_345_000_000,
		Qty:       25_000_000,
		Snapshot:  1,
	}
	if u != want {
		t.Fatalf("got %+v want %+v", u, want)
	}
}

func parseTick(t *testing.T, raw string) JSONTick {
	t.Helper()
	var tick JSONTick
	if err := json.Unmarshal([]byte(raw), &tick); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return tick
}

func TestNormalizeSideAliases(t *testing.T) {
	n := newTestNormalizer(t)
	for side, want := range map[string]schema.Side{
		"bid":  schema.SideBid,
		"buy":  schema.SideBid,
		"ask":  schema.SideAsk,
		"sell": schema.SideAsk,
	} {
		tick := parseTick(t, `{"venue": "binance", "side": "`+side+`", "price": "1", "qty": "1"}`)
		u, err := n.Normalize(tick)
		if err != nil {
			t.Fatalf("side %q: %v", side, err)
		}
		if u.Side != want {
			t.Fatalf("side %q mapped to %v", side, u.Side)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	n := newTestNormalizer(t)

	_, err := n.Normalize(parseTick(t, `{"venue": "okx", "side": "bid", "price": "1", "qty": "1"}`))
	if !errors.Is(err, exception.ErrUnknownVenue) {
		t.Fatalf("unknown venue: %v", err)
	}

	_, err = n.Normalize(parseTick(t, `{"venue": "binance", "side": "hold", "price": "1", "qty": "1"}`))
	if !errors.Is(err, exception.ErrInvalidSideTag) {
		t.Fatalf("bad side: %v", err)
	}

	_, err = n.Normalize(parseTick(t, `{"venue": "binance", "side": "bid", "price": "1.123456789", "qty": "1"}`))
	if err == nil {
		t.Fatal("expected precision error")
	}
}
