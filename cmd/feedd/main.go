package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/bus"
	"main/internal/core"
	"main/internal/gateway"
	"main/internal/ingest"
	"main/internal/mdg"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/schema"
	"main/internal/sigstore"
	"main/internal/strategy"
	"main/pkg/conn"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to JSON config")
	statsInterval := flag.Duration("stats-interval", 10*time.Second, "Stats log interval (0=disable)")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	cfg := loaded.File

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Profiler.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "bookd",
			ServerAddress:   cfg.Profiler.ServerAddress,
			Logger:          emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	metrics := obs.NewMetrics()
	broker := bus.NewBroker()

	var observers []core.Observer
	if cfg.Strategy.Enabled {
		qty, err := schema.ParseQty(cfg.Strategy.OrderQty)
		if err != nil {
			log.Fatalf("strategy orderQty: %v", err)
		}
		observers = append(observers, strategy.NewMarketMaker(cfg.Strategy.SpreadBps, qty))
	}
	if cfg.Store.Enabled {
		client, err := conn.New(conn.Option{
			Host:     cfg.Store.Host,
			Port:     cfg.Store.Port,
			User:     cfg.Store.User,
			Password: cfg.Store.Password,
			Database: cfg.Store.Database,
		})
		if err != nil {
			log.Fatalf("postgres connect failed: %v", err)
		}
		defer client.Close()

		store, err := sigstore.New(client, cfg.Store.SampleEvery)
		if err != nil {
			log.Fatalf("signal store init failed: %v", err)
		}
		observers = append(observers, store)
		go store.Run(ctx)
	}

	engine := core.NewEngine(core.Config{
		Registry:      loaded.Registry,
		LevelCapacity: cfg.Book.LevelCapacity,
		SignalWindow:  cfg.Signal.Window,
		Broker:        broker,
		Metrics:       metrics,
		Observers:     observers,
		OnError: func(u schema.Update, err error) {
			logs.Errorf("drop update venue=%d side=%s: %v", u.Venue, u.Side, err)
		},
	})

	updates := make(chan schema.Update, cfg.Feed.Buffer)
	switch cfg.Feed.Mode {
	case "ws":
		feed := ingest.NewFeed(cfg.Feed.URL, ingest.NewNormalizer(loaded.Registry), metrics)
		go func() {
			if err := feed.Run(ctx, updates); err != nil {
				logs.Errorf("feed stopped: %v", err)
				cancel()
			}
		}()
	case "synthetic":
		basePrice, err := schema.ParsePrice(cfg.Feed.Synthetic.BasePrice)
		if err != nil {
			log.Fatalf("synthetic basePrice: %v", err)
		}
		baseQty, err := schema.ParseQty(cfg.Feed.Synthetic.BaseQty)
		if err != nil {
			log.Fatalf("synthetic baseQty: %v", err)
		}
		gen := mdg.NewGenerator(mdg.GeneratorConfig{
			Venues:      loaded.Registry.VenueCount(),
			Symbol:      schema.SymbolID(cfg.Feed.SymbolID),
			BasePrice:   basePrice,
			BaseQty:     baseQty,
			SpreadTicks: cfg.Feed.Synthetic.SpreadTicks,
		})
		runner := mdg.NewRunner(gen, cfg.Feed.Synthetic.Rate)
		go runner.Run(ctx, updates)
	}

	go engine.Run(ctx, updates)

	server := gateway.NewServer(broker, cfg.Gateway.QueueSize)
	go func() {
		if err := server.Run(ctx, cfg.Gateway.Addr); err != nil {
			logs.Errorf("gateway stopped: %v", err)
			cancel()
		}
	}()

	if *statsInterval > 0 {
		go logStats(ctx, *statsInterval, metrics, broker)
	}

	select {
	case <-ctx.Done():
	case <-sys.Shutdown():
		cancel()
	}
	logs.Info("shutting down")
}

func logStats(ctx context.Context, interval time.Duration, metrics *obs.Metrics, broker *bus.Broker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := metrics.Snapshot()
			logs.Infof("applied=%d published=%d capacity_errs=%d unknown_venues=%d malformed=%d subs=%d sub_drops=%d",
				snap.UpdatesApplied, snap.Published, snap.CapacityErrors, snap.UnknownVenues,
				snap.MalformedFrames, broker.Len(), broker.Drops())
		}
	}
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
