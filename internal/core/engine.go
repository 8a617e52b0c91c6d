package core

import (
	"context"
	"time"

	"main/internal/book"
	"main/internal/bus"
	"main/internal/codec"
	"main/internal/errors"
	"main/internal/obs"
	"main/internal/schema"
	"main/internal/signal"
	"main/pkg/exception"
)

// Tick is the read-only view handed to observers after each applied update.
type Tick struct {
	Update schema.Update

	BestBid    book.PriceLevel
	BestAsk    book.PriceLevel
	HasBestBid bool
	HasBestAsk bool

	// OFI and NOBI refer to the venue that just mutated; WeightedNOBI
	// spans every configured venue.
	OFI          float64
	NOBI         float64
	WeightedNOBI float64
}

// Observer consumes ticks on the sequential apply path. Implementations
// must not block; anything slow belongs behind a queue.
type Observer interface {
	OnTick(Tick)
}

// Config assembles an engine.
type Config struct {
	Registry      *schema.Registry
	LevelCapacity int
	SignalWindow  int
	Broker        *bus.Broker
	Metrics       *obs.Metrics
	Observers     []Observer

	// OnError receives every rejected update so the ingestion side can
	// decide to skip, log, or stop. Never called for nil errors.
	OnError func(schema.Update, error)
}

// Engine owns the aggregate book and drives the update → signal → publish
// path. All mutation happens on the goroutine that calls Step or Run;
// updates are applied one at a time in arrival order.
type Engine struct {
	book      *book.AggregateBook
	trackers  []*signal.OFITracker
	broker    *bus.Broker
	metrics   *obs.Metrics
	observers []Observer
	onError   func(schema.Update, error)
}

// NewEngine builds the per-venue state once; nothing grows afterwards.
func NewEngine(cfg Config) *Engine {
	trackers := make([]*signal.OFITracker, cfg.Registry.VenueCount())
	for i := range trackers {
		trackers[i] = signal.NewOFITracker(cfg.SignalWindow)
	}
	return &Engine{
		book:      book.NewAggregateBook(cfg.Registry, cfg.LevelCapacity),
		trackers:  trackers,
		broker:    cfg.Broker,
		metrics:   cfg.Metrics,
		observers: cfg.Observers,
		onError:   cfg.OnError,
	}
}

// Book exposes the aggregate book for read-only collaborators.
func (e *Engine) Book() *book.AggregateBook {
	return e.book
}

// Step applies one update, refreshes the venue's imbalance signal, and
// publishes the encoded frame. Errors leave all other venue state intact.
func (e *Engine) Step(u schema.Update) error {
	start := time.Now()

	if err := e.book.OnUpdate(u); err != nil {
		switch {
		case errors.Is(err, exception.ErrBookCapacityExceeded):
			e.metrics.IncCapacityError()
		case errors.Is(err, exception.ErrUnknownVenue):
			e.metrics.IncUnknownVenue()
		}
		return err
	}

	vb, _ := e.book.Book(u.Venue)
	tick := Tick{Update: u}
	tick.BestBid, tick.HasBestBid = vb.BestBid()
	tick.BestAsk, tick.HasBestAsk = vb.BestAsk()

	// The tracker needs both sides; a one-sided book yields no event.
	if tick.HasBestBid && tick.HasBestAsk {
		tr := e.trackers[u.Venue-1]
		tick.OFI = tr.Observe(tick.BestBid.Price, tick.BestBid.Qty, tick.BestAsk.Price, tick.BestAsk.Qty)
		tick.NOBI = tr.NOBI(vb.TotalVolume(schema.SideBid), vb.TotalVolume(schema.SideAsk))
	}
	tick.WeightedNOBI = e.book.WeightedNOBI()

	if e.broker != nil {
		e.broker.Publish(codec.EncodeUpdate(nil, u))
		e.metrics.IncPublished()
	}
	for _, o := range e.observers {
		o.OnTick(tick)
	}

	e.metrics.IncApplied()
	e.metrics.ObserveApply(time.Since(start))
	return nil
}

// Run consumes updates sequentially until the context ends or the source
// closes. Rejected updates are reported through OnError and skipped.
func (e *Engine) Run(ctx context.Context, source <-chan schema.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-source:
			if !ok {
				return
			}
			if err := e.Step(u); err != nil && e.onError != nil {
				e.onError(u, err)
			}
		}
	}
}

// Reset clears every venue book and imbalance tracker.
func (e *Engine) Reset() {
	e.book.Reset()
	for _, tr := range e.trackers {
		tr.Reset()
	}
}
