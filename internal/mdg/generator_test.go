package mdg

import (
	"testing"

	"main/internal/schema"
)

func TestGeneratorDeterministic(t *testing.T) {
	cfg := GeneratorConfig{
		Venues:      3,
		Symbol:      1,
		BasePrice:   50_000 * schema.PointUnit,
		BaseQty:     schema.PointUnit,
		SpreadTicks: 10,
	}
	a := NewGenerator(cfg)
	b := NewGenerator(cfg)
	for i := 0; i < 500; i++ {
		ua, ub := a.Next(), b.Next()
		ua.Timestamp, ub.Timestamp = 0, 0
		if ua != ub {
			t.Fatalf("diverged at %d: %+v vs %+v", i, ua, ub)
		}
	}
}

func TestGeneratorCoversVenuesAndSides(t *testing.T) {
	g := NewGenerator(GeneratorConfig{
		Venues:      3,
		BasePrice:   100 * schema.PointUnit,
		BaseQty:     schema.PointUnit,
		SpreadTicks: 5,
	})

	venues := map[schema.VenueID]bool{}
	sides := map[schema.Side]bool{}
	sawRemoval := false
	for i := 0; i < 200; i++ {
		u := g.Next()
		venues[u.Venue] = true
		sides[u.Side] = true
		if u.Qty == 0 {
			sawRemoval = true
		}
		if u.Venue < 1 || u.Venue > 3 {
			t.Fatalf("venue out of range: %d", u.Venue)
		}
		if u.Side == schema.SideBid && u.Price >= 100*schema.PointUnit {
			t.Fatalf("bid at or above base: %d", u.Price)
		}
		if u.Side == schema.SideAsk && u.Price <= 100*schema.PointUnit {
			t.Fatalf("ask at or below base: %d", u.Price)
		}
	}
	if len(venues) != 3 || len(sides) != 2 {
		t.Fatalf("coverage: venues %v sides %v", venues, sides)
	}
	if !sawRemoval {
		t.Fatal("expected at least one zero-qty update")
	}
}
