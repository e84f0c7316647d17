package store

import (
	"encoding/json"
	"log/slog"

	"trade_console/internal/domain"
)

// SelectedMarketKey is the storage key of the last viewed market.
const SelectedMarketKey = "selected-market"

// MarketStore holds the selected market and remembers it across sessions
// when a key-value store is given.
type MarketStore struct {
	selected *Value[*domain.Instrument]
	kv       domain.KeyValueStore
	key      string
}

// NewMarketStore creates a store and restores the last viewed market from kv.
// kv may be nil.
func NewMarketStore(kv domain.KeyValueStore, key string) *MarketStore {
	if key == "" {
		key = SelectedMarketKey
	}
	s := &MarketStore{selected: NewValue[*domain.Instrument](nil), kv: kv, key: key}
	if kv == nil {
		return s
	}
	if raw, ok := kv.GetItem(key); ok {
		var instr domain.Instrument
		if err := json.Unmarshal([]byte(raw), &instr); err != nil || instr.Symbol == "" {
			slog.Warn("Ignoring malformed selected market", slog.String("key", key))
		} else {
			s.selected.Set(&instr)
		}
	}
	return s
}

// SelectedMarket returns the selected market.
func (s *MarketStore) SelectedMarket() (domain.Instrument, bool) {
	m := s.selected.Get()
	if m == nil {
		return domain.Instrument{}, false
	}
	return *m, true
}

// SetSelectedMarket selects a market and persists it.
func (s *MarketStore) SetSelectedMarket(instr domain.Instrument) {
	s.selected.Set(&instr)
	if s.kv == nil {
		return
	}
	b, err := json.Marshal(instr)
	if err != nil {
		return
	}
	if err := s.kv.SetItem(s.key, string(b)); err != nil {
		slog.Warn("Failed to persist selected market", slog.String("symbol", instr.Symbol), slog.Any("error", err))
	}
}
