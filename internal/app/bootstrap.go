package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"trade_console/internal/catalog"
	"trade_console/internal/domain"
	"trade_console/internal/engine"
	"trade_console/internal/event"
	"trade_console/internal/infra"
	"trade_console/internal/infra/storage"
	"trade_console/internal/stake"
	"trade_console/internal/store"
)

// stakeInputBounds places the headless stake input for tooltip anchoring.
var stakeInputBounds = domain.Rect{Left: 16, Top: 120, Width: 240, Height: 40}

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	ConfigPath string

	Config  *infra.Config
	Storage *storage.Storage
	KV      domain.KeyValueStore
	Metrics *infra.Metrics
	Console *engine.Console
	Catalog *infra.CatalogClient
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap(configPath string) *Bootstrap {
	return &Bootstrap{ConfigPath: configPath, Metrics: infra.GlobalMetrics}
}

// Initialize loads configuration, installs the logger and opens storage.
// logOut receives console log output.
func (b *Bootstrap) Initialize(logOut io.Writer) error {
	slog.Info("🚀 Bootstrapping Trade Console...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(b.ConfigPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg, logOut)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB). Favorites and the last market degrade to
	// memory when the database cannot be opened.
	db, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		slog.Warn("⚠️ Database unavailable, using in-memory storage", slog.Any("error", err))
		b.KV = store.NewMemoryKV()
	} else {
		b.Storage = db
		b.KV = db
		slog.Info("✅ Database initialized")
	}

	return nil
}

// Assemble builds the stores, controllers and the console.
func (b *Bootstrap) Assemble() *engine.Console {
	cfg := b.Config
	event.Warmup()

	trade := store.NewTradeStore(stake.Normalize("", cfg.Stake.Initial, ""))
	client := store.NewClientStore(cfg.Stake.Currency)
	panels := store.NewPanels()
	tooltip := store.NewTooltipStore()
	market := store.NewMarketStore(b.KV, cfg.Storage.SelectedMarketKey)
	favorites := catalog.NewFavoritesStore(b.KV, cfg.Storage.FavoritesKey, b.Metrics)

	var labels *catalog.Labeler
	if len(cfg.Catalog.Labels) > 0 {
		// Configured rules take precedence over the built-in table.
		labels = catalog.NewLabeler(append(append([]catalog.LabelRule{}, cfg.Catalog.Labels...), catalog.DefaultLabelRules...))
	}
	selector := catalog.NewSelector(catalog.SelectorDeps{
		Trade:     trade,
		Market:    market,
		Sheet:     panels,
		Sidebar:   panels,
		Favorites: favorites,
		Recorder:  b.Metrics,
	}, catalog.NewBuilder(cfg.Catalog.Categories, labels), cfg.Catalog.DefaultSymbol)

	input := engine.NewTextInput(stakeInputBounds)
	cont := engine.NewContinuations()
	field := stake.NewField(stake.Deps{
		Trade:     trade,
		Client:    client,
		Sheet:     panels,
		Tooltip:   tooltip,
		Input:     input,
		Scheduler: cont,
		Recorder:  b.Metrics,
	}, stake.Limits{MinStake: cfg.Stake.Min, MaxPayout: cfg.Stake.MaxPayout}, stake.NewStepper(cfg.Stake.Step))

	b.Console = engine.NewConsole(cfg.App.InboxSize, engine.Components{
		Trade:         trade,
		Client:        client,
		Panels:        panels,
		Tooltip:       tooltip,
		Favorites:     favorites,
		Selector:      selector,
		Field:         field,
		Input:         input,
		Continuations: cont,
		Recorder:      b.Metrics,
	}, nil)
	slog.Info("✅ Console assembled",
		slog.String("session", b.Console.Session()),
		slog.String("currency", cfg.Stake.Currency),
	)
	return b.Console
}

// StartCatalog starts the catalog client, feeding snapshots to the console.
func (b *Bootstrap) StartCatalog(ctx context.Context) error {
	var cache infra.SnapshotCache
	if b.Storage != nil {
		cache = b.Storage
	}

	b.Catalog = infra.NewCatalogClient(func(snap domain.CatalogSnapshot) {
		ev := &event.CatalogEvent{BaseEvent: event.BaseEvent{Ts: time.Now().UnixMilli()}, Snapshot: snap}
		if err := b.Console.Post(ctx, ev); err != nil {
			slog.Warn("Dropped catalog snapshot", slog.Any("error", err))
		}
	}, infra.CatalogClientConfig{
		URL:             b.Config.Catalog.URL,
		PollIntervalSec: b.Config.Catalog.PollIntervalSec,
		MaxRetries:      b.Config.Catalog.MaxRetries,
		Static:          b.Config.Catalog.Groups,
		Cache:           cache,
		Recorder:        b.Metrics,
	})
	return b.Catalog.Start(ctx)
}

// Close stops background work and releases storage.
func (b *Bootstrap) Close() {
	if b.Catalog != nil {
		b.Catalog.Stop()
	}
	if b.Storage != nil {
		if err := b.Storage.Close(); err != nil {
			slog.Warn("Failed to close database", slog.Any("error", err))
		}
	}
}
