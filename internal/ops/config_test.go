package ops

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadBuildsRegistry(t *testing.T) {
	path := writeConfig(t, `{
		"registry": {"venues": [
			{"name": "binance", "weight": 0.6},
			{"name": "bybit", "weight": 0.3},
			{"name": "coinbase", "weight": 0.1}
		]},
		"book": {"levelCapacity": 64},
		"signal": {"window": 16},
		"feed": {"mode": "synthetic"}
	}`)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Registry.VenueCount() != 3 {
		t.Fatalf("venue count = %d", loaded.Registry.VenueCount())
	}
	id, ok := loaded.Registry.VenueIDByName("bybit")
	if !ok || id != 2 {
		t.Fatalf("bybit id = %d, ok = %v", id, ok)
	}
	weights := loaded.Registry.Weights()
	if weights[0] != 0.6 || weights[1] != 0.3 || weights[2] != 0.1 {
		t.Fatalf("weights = %v", weights)
	}
	if loaded.File.Book.LevelCapacity != 64 {
		t.Fatalf("levelCapacity = %d", loaded.File.Book.LevelCapacity)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"registry": {"venues": [{"name": "binance", "weight": 1}]}
	}`)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := loaded.File
	if f.Book.LevelCapacity != 1000 {
		t.Fatalf("default levelCapacity = %d", f.Book.LevelCapacity)
	}
	if f.Signal.Window != 64 {
		t.Fatalf("default window = %d", f.Signal.Window)
	}
	if f.Feed.Mode != "synthetic" || f.Feed.Buffer != 1024 {
		t.Fatalf("feed defaults = %+v", f.Feed)
	}
	if f.Gateway.Addr != ":8080" || f.Gateway.QueueSize != 256 {
		t.Fatalf("gateway defaults = %+v", f.Gateway)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no venues", `{"registry": {"venues": []}}`},
		{"duplicate venue", `{"registry": {"venues": [{"name": "x", "weight": 1}, {"name": "x", "weight": 1}]}}`},
		{"negative weight", `{"registry": {"venues": [{"name": "x", "weight": -1}]}}`},
		{"ws without url", `{"registry": {"venues": [{"name": "x", "weight": 1}]}, "feed": {"mode": "ws"}}`},
		{"unknown mode", `{"registry": {"venues": [{"name": "x", "weight": 1}]}, "feed": {"mode": "udp"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
