package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"main/internal/schema"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Registry RegistryConfig `json:"registry"`
	Book     BookConfig     `json:"book"`
	Signal   SignalConfig   `json:"signal"`
	Feed     FeedConfig     `json:"feed"`
	Gateway  GatewayConfig  `json:"gateway"`
	Store    StoreConfig    `json:"store"`
	Profiler ProfilerConfig `json:"profiler"`
	Strategy StrategyConfig `json:"strategy"`
}

// RegistryConfig defines the venue mapping.
type RegistryConfig struct {
	Venues []VenueConfig `json:"venues"`
}

// VenueConfig describes a venue entry and its aggregation weight.
type VenueConfig struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// BookConfig sizes the per-venue price level tables.
type BookConfig struct {
	LevelCapacity int `json:"levelCapacity"`
}

// SignalConfig tunes the imbalance trackers.
type SignalConfig struct {
	Window int `json:"window"`
}

// FeedConfig selects and tunes the update source.
type FeedConfig struct {
	Mode      string          `json:"mode"` // "ws" or "synthetic"
	URL       string          `json:"url"`
	SymbolID  uint32          `json:"symbolId"`
	Buffer    int             `json:"buffer"`
	Synthetic SyntheticConfig `json:"synthetic"`
}

// SyntheticConfig parameterizes the built-in update generator.
type SyntheticConfig struct {
	BasePrice   string  `json:"basePrice"`
	BaseQty     string  `json:"baseQty"`
	SpreadTicks int64   `json:"spreadTicks"`
	Rate        float64 `json:"rate"`
}

// GatewayConfig configures the websocket fan-out server.
type GatewayConfig struct {
	Addr      string `json:"addr"`
	QueueSize int    `json:"queueSize"`
}

// StoreConfig configures optional signal sample persistence.
type StoreConfig struct {
	Enabled     bool   `json:"enabled"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	User        string `json:"user"`
	Password    string `json:"password"`
	Database    string `json:"database"`
	SampleEvery int    `json:"sampleEvery"`
}

// ProfilerConfig configures optional continuous profiling.
type ProfilerConfig struct {
	Enabled       bool   `json:"enabled"`
	ServerAddress string `json:"serverAddress"`
}

// StrategyConfig configures the quoting observer.
type StrategyConfig struct {
	Enabled   bool    `json:"enabled"`
	SpreadBps float64 `json:"spreadBps"`
	OrderQty  string  `json:"orderQty"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Registry *schema.Registry
	File     FileConfig
}

// Load reads a JSON config file, fills defaults, and builds the registry.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return Loaded{}, err
	}
	registry, err := buildRegistry(cfg.Registry)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Registry: registry, File: cfg}, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Book.LevelCapacity == 0 {
		cfg.Book.LevelCapacity = 1000
	}
	if cfg.Signal.Window == 0 {
		cfg.Signal.Window = 64
	}
	if cfg.Feed.Mode == "" {
		cfg.Feed.Mode = "synthetic"
	}
	if cfg.Feed.Buffer == 0 {
		cfg.Feed.Buffer = 1024
	}
	if cfg.Feed.Synthetic.BasePrice == "" {
		cfg.Feed.Synthetic.BasePrice = "50000"
	}
	if cfg.Feed.Synthetic.BaseQty == "" {
		cfg.Feed.Synthetic.BaseQty = "1"
	}
	if cfg.Feed.Synthetic.SpreadTicks == 0 {
		cfg.Feed.Synthetic.SpreadTicks = 10
	}
	if cfg.Feed.Synthetic.Rate == 0 {
		cfg.Feed.Synthetic.Rate = 100
	}
	if cfg.Gateway.Addr == "" {
		cfg.Gateway.Addr = ":8080"
	}
	if cfg.Gateway.QueueSize == 0 {
		cfg.Gateway.QueueSize = 256
	}
	if cfg.Store.SampleEvery == 0 {
		cfg.Store.SampleEvery = 100
	}
	if cfg.Strategy.SpreadBps == 0 {
		cfg.Strategy.SpreadBps = 10
	}
	if cfg.Strategy.OrderQty == "" {
		cfg.Strategy.OrderQty = "0.1"
	}
}

func validate(cfg FileConfig) error {
	switch cfg.Feed.Mode {
	case "ws":
		if cfg.Feed.URL == "" {
			return fmt.Errorf("feed url is required in ws mode")
		}
	case "synthetic":
	default:
		return fmt.Errorf("unknown feed mode: %s", cfg.Feed.Mode)
	}
	if cfg.Book.LevelCapacity < 0 {
		return fmt.Errorf("book levelCapacity must be >= 0")
	}
	if cfg.Signal.Window < 0 {
		return fmt.Errorf("signal window must be >= 0")
	}
	return nil
}

func buildRegistry(cfg RegistryConfig) (*schema.Registry, error) {
	if len(cfg.Venues) == 0 {
		return nil, fmt.Errorf("at least one venue is required")
	}
	reg := schema.NewRegistry()
	for _, venue := range cfg.Venues {
		if _, err := reg.AddVenue(venue.Name, venue.Weight); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
