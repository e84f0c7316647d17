package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trade_console/internal/event"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `
stake:
  initial: "10"
  min: 1
  max_payout: 100
  currency: USD
catalog:
  default_symbol: R_100
  groups:
    - market_name: synthetic_index
      instruments: [R_100, 1HZ100V]
    - market_name: forex
      instruments: [EURUSD, USDJPY]
      closed: [USDJPY]
storage:
  path: ` + filepath.Join(dir, "console.db") + `
logging:
  dir: ` + filepath.Join(dir, "logs") + `
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBootstrap_EndToEnd(t *testing.T) {
	t.Setenv("TRADE_CATALOG_URL", "")
	b := NewBootstrap(writeTestConfig(t))
	if err := b.Initialize(io.Discard); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer b.Close()
	if b.Storage == nil {
		t.Fatal("Expected SQLite storage")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	console := b.Assemble()
	go console.Run(ctx)
	if err := b.StartCatalog(ctx); err != nil {
		t.Fatalf("StartCatalog failed: %v", err)
	}

	for _, ev := range []event.Event{
		&event.ToggleFavoriteEvent{Symbol: "EURUSD"},
		&event.SelectEvent{Symbol: "EURUSD"},
		&event.KeyInputEvent{Raw: "25 USD", Caret: 2},
	} {
		if err := console.Post(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := console.Sync(ctx); err != nil {
		t.Fatal(err)
	}

	v := console.View()
	if v.Markets.State != "ready" {
		t.Fatalf("Expected ready catalog, got %s", v.Markets.State)
	}
	if v.Instrument != "EURUSD" || v.Stake.Committed != "25" {
		t.Errorf("Expected EURUSD with stake 25, got %s / %s", v.Instrument, v.Stake.Committed)
	}

	// Favorites and the selected market are persisted in SQLite.
	if raw, ok := b.Storage.GetItem(b.Config.Storage.FavoritesKey); !ok || raw != `["EURUSD"]` {
		t.Errorf("Unexpected persisted favorites %q", raw)
	}
	if raw, ok := b.Storage.GetItem(b.Config.Storage.SelectedMarketKey); !ok || !strings.Contains(raw, "EURUSD") {
		t.Errorf("Unexpected persisted market %q", raw)
	}

	snap := b.Metrics.Snapshot()
	if snap.SelectionsAccepted == 0 || snap.EventsProcessed == 0 {
		t.Errorf("Metrics should be recorded, got %+v", snap)
	}
}

func TestBootstrap_MissingConfig(t *testing.T) {
	b := NewBootstrap(filepath.Join(t.TempDir(), "nope.yaml"))
	if err := b.Initialize(io.Discard); err == nil {
		t.Error("Expected error for missing config")
	}
}
