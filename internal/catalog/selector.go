package catalog

import (
	"fmt"
	"log/slog"

	"trade_console/internal/domain"
)

// TradeSelection is the part of the trade-configuration store the selector needs.
type TradeSelection interface {
	Instrument() string
	SetInstrument(symbol string)
	SetSymbol(symbol string)
}

// MarketSelection holds the selected (last viewed) market.
type MarketSelection interface {
	SelectedMarket() (domain.Instrument, bool)
	SetSelectedMarket(instr domain.Instrument)
}

// BottomSheetCloser dismisses the mobile bottom sheet.
type BottomSheetCloser interface {
	SetBottomSheet(visible bool)
}

// SidebarCloser dismisses the left sidebar.
type SidebarCloser interface {
	SetLeftSidebar(visible bool)
}

// Recorder receives selector activity for metrics. Optional.
type Recorder interface {
	FavoriteRecorder
	RecordSelection(accepted bool)
	RecordCatalogBuild()
	RecordCatalogError()
}

// ListState is the load state of the catalog.
type ListState int

const (
	StateLoading ListState = iota
	StateError
	StateReady
)

// String returns the string representation of ListState
func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Tab is one selectable tab of the market list.
type Tab struct {
	ID    string
	Label string
}

// Listing is what the market list shows for the current state.
type Listing struct {
	State     ListState
	Err       error
	Tab       string
	Query     string
	Sections  []domain.CategoryView
	NoMatches bool
}

// SelectorDeps groups the collaborators of a Selector.
type SelectorDeps struct {
	Trade     TradeSelection
	Market    MarketSelection
	Sheet     BottomSheetCloser
	Sidebar   SidebarCloser
	Favorites *FavoritesStore
	Recorder  Recorder
}

// Selector is the market selector state machine: tab, search query,
// favorites overlay and the selection gate. It is driven from a single
// goroutine and is not safe for concurrent use.
type Selector struct {
	deps          SelectorDeps
	builder       *Builder
	gate          Gate
	defaultSymbol string

	state  ListState
	err    error
	groups []domain.MarketGroup
	views  Views

	tab         string
	query       string
	initialized bool
}

// NewSelector creates a selector in the loading state on the All tab.
func NewSelector(deps SelectorDeps, builder *Builder, defaultSymbol string) *Selector {
	return &Selector{
		deps:          deps,
		builder:       builder,
		defaultSymbol: defaultSymbol,
		state:         StateLoading,
		tab:           AllID,
	}
}

// Mount performs the one-shot default selection: when the trade store has no
// instrument yet, the selected market (or the configured default) is committed.
func (s *Selector) Mount() {
	if s.initialized {
		return
	}
	s.initialized = true

	if s.deps.Trade.Instrument() != "" {
		return
	}
	symbol := s.defaultSymbol
	if s.deps.Market != nil {
		if m, ok := s.deps.Market.SelectedMarket(); ok && m.Symbol != "" {
			symbol = m.Symbol
		}
	}
	if symbol == "" {
		return
	}
	s.deps.Trade.SetSymbol(symbol)
	s.deps.Trade.SetInstrument(symbol)
	slog.Info("Default instrument selected", slog.String("symbol", symbol))
}

// Refresh applies a catalog snapshot. Loading and error snapshots never build views.
func (s *Selector) Refresh(snap domain.CatalogSnapshot) {
	switch {
	case snap.Err != nil:
		s.state = StateError
		s.err = snap.Err
		s.groups = nil
		s.views = Views{}
		if s.deps.Recorder != nil {
			s.deps.Recorder.RecordCatalogError()
		}
		slog.Error("Catalog unavailable", slog.Any("error", snap.Err))
	case snap.Loading:
		if s.state != StateReady {
			s.state = StateLoading
		}
	default:
		s.state = StateReady
		s.err = nil
		s.groups = snap.Groups
		s.rebuild()
		if s.tab != AllID && s.tab != FavouritesID {
			if _, ok := s.views.Category(s.tab); !ok {
				slog.Info("Active tab left the catalog", slog.String("tab", s.tab))
				s.tab = AllID
			}
		}
		slog.Info("Catalog rebuilt",
			slog.Int("categories", len(s.views.Categories)),
			slog.Int("instruments", s.views.All.Len()),
		)
	}
}

func (s *Selector) rebuild() {
	s.views = s.builder.Build(s.groups, s.favorites())
	if s.deps.Recorder != nil {
		s.deps.Recorder.RecordCatalogBuild()
	}
}

func (s *Selector) favorites() FavoriteSet {
	if s.deps.Favorites == nil {
		return FavoriteSet{}
	}
	return s.deps.Favorites.Set()
}

// State returns the catalog load state.
func (s *Selector) State() ListState {
	return s.state
}

// Views returns the current views. Empty unless the state is ready.
func (s *Selector) Views() Views {
	return s.views
}

// Tabs lists All, Favourites and one tab per non-empty category.
func (s *Selector) Tabs() []Tab {
	tabs := []Tab{{ID: AllID, Label: "All"}, {ID: FavouritesID, Label: "Favourites"}}
	for _, c := range s.views.Categories {
		tabs = append(tabs, Tab{ID: c.ID, Label: c.Label})
	}
	return tabs
}

// SetTab switches the active tab by id or label.
func (s *Selector) SetTab(tab string) error {
	for _, t := range s.Tabs() {
		if t.ID == tab || t.Label == tab {
			s.tab = t.ID
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", tab)
}

// ActiveTab returns the active tab id.
func (s *Selector) ActiveTab() string {
	return s.tab
}

// SetQuery updates the search query.
func (s *Selector) SetQuery(query string) {
	s.query = query
}

// ClearQuery empties the search query.
func (s *Selector) ClearQuery() {
	s.query = ""
}

// Query returns the search query.
func (s *Selector) Query() string {
	return s.query
}

// ToggleFavorite flips a favorite and rebuilds the views.
func (s *Selector) ToggleFavorite(symbol string) FavoriteSet {
	if s.deps.Favorites == nil {
		return FavoriteSet{}
	}
	set := s.deps.Favorites.Toggle(symbol)
	if s.state == StateReady {
		s.rebuild()
	}
	return set
}

// Listing returns the sections of the active tab with the search applied.
func (s *Selector) Listing() Listing {
	l := Listing{State: s.state, Err: s.err, Tab: s.tab, Query: s.query}
	if s.state != StateReady {
		return l
	}

	var source []domain.CategoryView
	switch s.tab {
	case AllID:
		source = s.views.Categories
	case FavouritesID:
		source = []domain.CategoryView{s.views.Favourites}
	default:
		if v, ok := s.views.Category(s.tab); ok {
			source = []domain.CategoryView{v}
		}
	}

	total := 0
	for _, view := range source {
		res := Search(view, s.query)
		if res.NoMatches() {
			continue
		}
		total += res.View.Len()
		l.Sections = append(l.Sections, res.View)
	}
	l.NoMatches = queryActive(s.query) && total == 0
	return l
}

// Select runs the selection gate for a symbol of the current catalog. On
// acceptance the instrument is committed and the bottom sheet and sidebar are
// closed. Closed markets are a silent no-op.
func (s *Selector) Select(symbol string) (Selection, error) {
	if s.state != StateReady {
		return Selection{}, domain.ErrCatalogUnavailable
	}
	instr, ok := s.views.All.Find(symbol)
	if !ok {
		return Selection{}, fmt.Errorf("select %s: %w", symbol, domain.ErrUnknownSymbol)
	}

	sel := s.gate.TrySelect(instr)
	if s.deps.Recorder != nil {
		s.deps.Recorder.RecordSelection(sel.Accepted)
	}
	if !sel.Accepted {
		slog.Debug("Selection rejected", slog.String("symbol", symbol), slog.String("reason", string(sel.Reason)))
		return sel, nil
	}

	s.deps.Trade.SetSymbol(instr.Symbol)
	s.deps.Trade.SetInstrument(instr.Symbol)
	if s.deps.Market != nil {
		s.deps.Market.SetSelectedMarket(instr)
	}
	if s.deps.Sheet != nil {
		s.deps.Sheet.SetBottomSheet(false)
	}
	if s.deps.Sidebar != nil {
		s.deps.Sidebar.SetLeftSidebar(false)
	}
	return sel, nil
}
