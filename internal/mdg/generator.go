// Package mdg produces a deterministic synthetic update stream for local
// runs and load checks.
package mdg

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"main/internal/schema"
)

// Generator walks a price around a base level for every registered venue,
// alternating sides so both halves of each book stay populated. The
// sequence is fully determined by its parameters.
type Generator struct {
	venues      int
	symbol      schema.SymbolID
	basePrice   schema.Price
	baseQty     schema.Qty
	spreadTicks int64

	seq   uint64
	state uint64
}

type GeneratorConfig struct {
	Venues      int
	Symbol      schema.SymbolID
	BasePrice   schema.Price
	BaseQty     schema.Qty
	SpreadTicks int64
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Venues < 1 {
		cfg.Venues = 1
	}
	if cfg.SpreadTicks < 1 {
		cfg.SpreadTicks = 1
	}
	return &Generator{
		venues:      cfg.Venues,
		symbol:      cfg.Symbol,
		basePrice:   cfg.BasePrice,
		baseQty:     cfg.BaseQty,
		spreadTicks: cfg.SpreadTicks,
		state:       0x9e3779b97f4a7c15,
	}
}

// Next returns the following update in the sequence.
func (g *Generator) Next() schema.Update {
	g.seq++
	g.state = g.state*6364136223846793005 + 1442695040888963407

	venue := schema.VenueID(g.seq%uint64(g.venues)) + 1
	side := schema.SideBid
	if g.seq%2 == 0 {
		side = schema.SideAsk
	}

	// Drift up to spreadTicks price points away from base, asks above and
	// bids below so the book never crosses itself.
	tick := schema.Price(schema.PointUnit / 100)
	offset := schema.Price(int64(g.state>>33)%g.spreadTicks+1) * tick
	price := g.basePrice - offset
	if side == schema.SideAsk {
		price = g.basePrice + offset
	}

	qty := g.baseQty + schema.Qty(g.state>>48)*schema.Qty(schema.PointUnit/1000)
	// Every so often clear a level to exercise removals.
	if g.seq%37 == 0 {
		qty = 0
	}

	return schema.Update{
		Timestamp: schema.Timestamp(time.Now().UnixNano()),
		Venue:     venue,
		Symbol:    g.symbol,
		Side:      side,
		Price:     price,
		Qty:       qty,
	}
}

// Runner paces a generator onto a channel.
type Runner struct {
	gen     *Generator
	limiter *rate.Limiter
}

// NewRunner paces at updatesPerSec with a small burst allowance.
func NewRunner(gen *Generator, updatesPerSec float64) *Runner {
	if updatesPerSec <= 0 {
		updatesPerSec = 1
	}
	return &Runner{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Limit(updatesPerSec), 16),
	}
}

// Run emits updates until the context ends.
func (r *Runner) Run(ctx context.Context, out chan<- schema.Update) error {
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil
		}
		select {
		case out <- r.gen.Next():
		case <-ctx.Done():
			return nil
		}
	}
}
