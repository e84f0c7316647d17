package infra

import (
	"sync/atomic"
	"time"

	"trade_console/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// errorKinds is the number of domain.ErrorKind values.
const errorKinds = int(domain.ErrorKindNonNumeric) + 1

// Metrics counts console activity with atomic operations.
// It implements stake.Recorder, catalog.Recorder and engine.Recorder.
type Metrics struct {
	// Counters
	eventsProcessed    atomic.Uint64
	stakeEdits         atomic.Uint64
	validations        [errorKinds]atomic.Uint64
	selectionsAccepted atomic.Uint64
	selectionsRejected atomic.Uint64
	favoriteToggles    atomic.Uint64
	catalogBuilds      atomic.Uint64
	catalogErrors      atomic.Uint64
	catalogFetches     atomic.Uint64
	fetchFailures      atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordEvent records one processed console event with its latency.
func (m *Metrics) RecordEvent(latencyNs int64) {
	m.eventsProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordStakeEdit records a keystroke or step on the stake field.
func (m *Metrics) RecordStakeEdit() {
	m.stakeEdits.Add(1)
}

// RecordValidation records a stake verdict by kind; ErrorKindNone counts passes.
func (m *Metrics) RecordValidation(kind domain.ErrorKind) {
	if int(kind) < 0 || int(kind) >= errorKinds {
		return
	}
	m.validations[kind].Add(1)
}

// RecordSelection records a selection gate outcome.
func (m *Metrics) RecordSelection(accepted bool) {
	if accepted {
		m.selectionsAccepted.Add(1)
	} else {
		m.selectionsRejected.Add(1)
	}
}

// RecordFavoriteToggle records a favorite toggle.
func (m *Metrics) RecordFavoriteToggle() {
	m.favoriteToggles.Add(1)
}

// RecordCatalogBuild records a catalog view rebuild.
func (m *Metrics) RecordCatalogBuild() {
	m.catalogBuilds.Add(1)
}

// RecordCatalogError records a catalog snapshot in the error state.
func (m *Metrics) RecordCatalogError() {
	m.catalogErrors.Add(1)
}

// RecordFetch records a catalog fetch attempt.
func (m *Metrics) RecordFetch(err error) {
	m.catalogFetches.Add(1)
	if err != nil {
		m.fetchFailures.Add(1)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	EventsProcessed    uint64
	AvgLatencyNs       int64
	StakeEdits         uint64
	Validations        map[domain.ErrorKind]uint64
	SelectionsAccepted uint64
	SelectionsRejected uint64
	FavoriteToggles    uint64
	CatalogBuilds      uint64
	CatalogErrors      uint64
	CatalogFetches     uint64
	FetchFailures      uint64
	Timestamp          time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	validations := make(map[domain.ErrorKind]uint64, errorKinds)
	for i := range m.validations {
		validations[domain.ErrorKind(i)] = m.validations[i].Load()
	}

	return MetricsSnapshot{
		EventsProcessed:    m.eventsProcessed.Load(),
		AvgLatencyNs:       avgLatency,
		StakeEdits:         m.stakeEdits.Load(),
		Validations:        validations,
		SelectionsAccepted: m.selectionsAccepted.Load(),
		SelectionsRejected: m.selectionsRejected.Load(),
		FavoriteToggles:    m.favoriteToggles.Load(),
		CatalogBuilds:      m.catalogBuilds.Load(),
		CatalogErrors:      m.catalogErrors.Load(),
		CatalogFetches:     m.catalogFetches.Load(),
		FetchFailures:      m.fetchFailures.Load(),
		Timestamp:          time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.eventsProcessed.Store(0)
	m.stakeEdits.Store(0)
	for i := range m.validations {
		m.validations[i].Store(0)
	}
	m.selectionsAccepted.Store(0)
	m.selectionsRejected.Store(0)
	m.favoriteToggles.Store(0)
	m.catalogBuilds.Store(0)
	m.catalogErrors.Store(0)
	m.catalogFetches.Store(0)
	m.fetchFailures.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}

// Collector exports a Metrics snapshot to Prometheus on every scrape.
type Collector struct {
	m *Metrics

	events      *prometheus.Desc
	latency     *prometheus.Desc
	stakeEdits  *prometheus.Desc
	validations *prometheus.Desc
	selections  *prometheus.Desc
	favorites   *prometheus.Desc
	builds      *prometheus.Desc
	catalogErrs *prometheus.Desc
	fetches     *prometheus.Desc
	fetchFails  *prometheus.Desc
}

// NewCollector creates a collector over m.
func NewCollector(m *Metrics) *Collector {
	const ns = "trade_console"
	return &Collector{
		m:           m,
		events:      prometheus.NewDesc(ns+"_events_processed_total", "Console events processed.", nil, nil),
		latency:     prometheus.NewDesc(ns+"_event_latency_avg_seconds", "Average console event processing time.", nil, nil),
		stakeEdits:  prometheus.NewDesc(ns+"_stake_edits_total", "Stake keystrokes and steps.", nil, nil),
		validations: prometheus.NewDesc(ns+"_stake_validations_total", "Stake verdicts by kind.", []string{"kind"}, nil),
		selections:  prometheus.NewDesc(ns+"_selections_total", "Market selections by outcome.", []string{"outcome"}, nil),
		favorites:   prometheus.NewDesc(ns+"_favorite_toggles_total", "Favorite toggles.", nil, nil),
		builds:      prometheus.NewDesc(ns+"_catalog_builds_total", "Catalog view rebuilds.", nil, nil),
		catalogErrs: prometheus.NewDesc(ns+"_catalog_errors_total", "Catalog snapshots in the error state.", nil, nil),
		fetches:     prometheus.NewDesc(ns+"_catalog_fetches_total", "Catalog fetch attempts.", nil, nil),
		fetchFails:  prometheus.NewDesc(ns+"_catalog_fetch_failures_total", "Failed catalog fetch attempts.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.events
	ch <- c.latency
	ch <- c.stakeEdits
	ch <- c.validations
	ch <- c.selections
	ch <- c.favorites
	ch <- c.builds
	ch <- c.catalogErrs
	ch <- c.fetches
	ch <- c.fetchFails
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.m.Snapshot()

	counter := func(d *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}
	counter(c.events, snap.EventsProcessed)
	ch <- prometheus.MustNewConstMetric(c.latency, prometheus.GaugeValue, time.Duration(snap.AvgLatencyNs).Seconds())
	counter(c.stakeEdits, snap.StakeEdits)
	for kind, n := range snap.Validations {
		counter(c.validations, n, kind.String())
	}
	counter(c.selections, snap.SelectionsAccepted, "accepted")
	counter(c.selections, snap.SelectionsRejected, "rejected")
	counter(c.favorites, snap.FavoriteToggles)
	counter(c.builds, snap.CatalogBuilds)
	counter(c.catalogErrs, snap.CatalogErrors)
	counter(c.fetches, snap.CatalogFetches)
	counter(c.fetchFails, snap.FetchFailures)
}
