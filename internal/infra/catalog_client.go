package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"sync"
	"time"

	"trade_console/internal/domain"
)

// catalogResponse is the catalog endpoint payload.
type catalogResponse struct {
	MarketGroups []domain.MarketGroup `json:"market_groups"`
}

// SnapshotCache keeps the last good catalog for warm starts.
type SnapshotCache interface {
	SaveCatalog(groups []domain.MarketGroup) error
	LoadCatalog() ([]domain.MarketGroup, error)
}

// FetchRecorder receives catalog fetch outcomes. Optional.
type FetchRecorder interface {
	RecordFetch(err error)
}

// CatalogClientConfig configures a CatalogClient.
type CatalogClientConfig struct {
	URL             string
	PollIntervalSec int
	MaxRetries      int
	// Static groups are served instead of polling when URL is empty.
	Static   []domain.MarketGroup
	Cache    SnapshotCache
	Recorder FetchRecorder
}

// CatalogClient polls the catalog endpoint and reports snapshots: Loading
// first, then the groups whenever they change. An error snapshot is reported
// only while no good catalog has been delivered; later failures keep the last
// good one.
type CatalogClient struct {
	onUpdate     func(domain.CatalogSnapshot)
	groups       []domain.MarketGroup
	delivered    bool
	mu           sync.RWMutex
	pollInterval time.Duration
	maxRetries   int
	apiURL       string
	static       []domain.MarketGroup
	cache        SnapshotCache
	recorder     FetchRecorder
	httpClient   *http.Client
	backoff      func(retryCount int) time.Duration
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewCatalogClient creates a client reporting snapshots to onUpdate.
func NewCatalogClient(onUpdate func(domain.CatalogSnapshot), cfg CatalogClientConfig) *CatalogClient {
	c := &CatalogClient{
		onUpdate:     onUpdate,
		pollInterval: 5 * time.Minute,
		maxRetries:   3,
		apiURL:       cfg.URL,
		static:       cfg.Static,
		cache:        cfg.Cache,
		recorder:     cfg.Recorder,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		backoff: CalculateBackoff,
	}
	if cfg.PollIntervalSec > 0 {
		c.pollInterval = time.Duration(cfg.PollIntervalSec) * time.Second
	}
	if cfg.MaxRetries > 0 {
		c.maxRetries = cfg.MaxRetries
	}
	return c
}

// Start reports Loading, warms up from the cache and begins polling.
func (c *CatalogClient) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	c.emit(domain.CatalogSnapshot{Loading: true})

	if c.apiURL == "" {
		if len(c.static) == 0 {
			c.emit(domain.CatalogSnapshot{Err: domain.ErrCatalogUnavailable})
			return domain.ErrCatalogUnavailable
		}
		slog.Info("Serving static catalog", slog.Int("groups", len(c.static)))
		c.update(c.static)
		return nil
	}

	c.warmStart()

	if err := c.fetchCatalog(ctx); err != nil {
		slog.Warn("Initial catalog fetch failed", slog.Any("error", err))
		c.fail(err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Catalog polling panic recovered", slog.Any("panic", r))
			}
		}()

		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Catalog polling stopped")
				return
			case <-ticker.C:
				if err := c.fetchCatalog(ctx); err != nil {
					slog.Warn("Catalog fetch failed", slog.Any("error", err))
					c.fail(err)
				}
			}
		}
	}()

	return nil
}

func (c *CatalogClient) warmStart() {
	if c.cache == nil {
		return
	}
	groups, err := c.cache.LoadCatalog()
	if err != nil {
		slog.Warn("Failed to load cached catalog", slog.Any("error", err))
		return
	}
	if len(groups) > 0 {
		slog.Info("Catalog warm start from cache", slog.Int("groups", len(groups)))
		c.update(groups)
	}
}

// fetchCatalog fetches the catalog with retry on retriable failures.
func (c *CatalogClient) fetchCatalog(ctx context.Context) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if i > 0 {
			delay := c.backoff(i - 1)
			slog.Info("Retrying catalog fetch", slog.Int("attempt", i), slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		groups, err := c.doFetch(ctx)
		if c.recorder != nil {
			c.recorder.RecordFetch(err)
		}
		if err == nil {
			c.update(groups)
			return nil
		}
		lastErr = err
		slog.Warn("Catalog fetch attempt failed", slog.Int("attempt", i+1), slog.Any("error", err))
		if !domain.IsRetriable(err) {
			break
		}
	}
	return lastErr
}

func (c *CatalogClient) doFetch(ctx context.Context) ([]domain.MarketGroup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, domain.NewFatalNetworkError("request", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError("fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, domain.NewNetworkError("fetch", err)
		}
		return nil, domain.NewFatalNetworkError("fetch", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError("read", err)
	}

	var data catalogResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, domain.NewFatalNetworkError("decode", err)
	}
	if len(data.MarketGroups) == 0 {
		return nil, domain.NewFatalNetworkError("decode", errors.New("empty market groups"))
	}
	return data.MarketGroups, nil
}

// update stores groups and reports them when they changed.
func (c *CatalogClient) update(groups []domain.MarketGroup) {
	c.mu.Lock()
	changed := !c.delivered || !reflect.DeepEqual(c.groups, groups)
	c.groups = groups
	c.delivered = true
	c.mu.Unlock()

	if !changed {
		return
	}
	slog.Info("Catalog updated", slog.Int("groups", len(groups)))
	if c.cache != nil && c.apiURL != "" {
		if err := c.cache.SaveCatalog(groups); err != nil {
			slog.Warn("Failed to cache catalog", slog.Any("error", err))
		}
	}
	c.emit(domain.CatalogSnapshot{Groups: groups})
}

// fail reports err unless a good catalog is already on screen.
func (c *CatalogClient) fail(err error) {
	c.mu.RLock()
	delivered := c.delivered
	c.mu.RUnlock()
	if delivered {
		return
	}
	c.emit(domain.CatalogSnapshot{Err: fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)})
}

func (c *CatalogClient) emit(snap domain.CatalogSnapshot) {
	if c.onUpdate != nil {
		c.onUpdate(snap)
	}
}

// Stop stops the polling
func (c *CatalogClient) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
	}
}
