package catalog

import (
	"encoding/json"
	"log/slog"
	"slices"

	"trade_console/internal/domain"
)

// FavoritesKey is the storage key favorites are persisted under.
const FavoritesKey = "market-favorites"

// FavoriteSet is an immutable set of symbols. Insertion order is kept so the
// persisted list is stable. Symbols outside the current catalog are kept.
type FavoriteSet struct {
	symbols []string
}

// NewFavoriteSet creates a set, dropping duplicates and empty symbols.
func NewFavoriteSet(symbols ...string) FavoriteSet {
	var out []string
	for _, s := range symbols {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return FavoriteSet{symbols: out}
}

// Contains reports membership.
func (f FavoriteSet) Contains(symbol string) bool {
	return slices.Contains(f.symbols, symbol)
}

// Toggle returns a new set with symbol added or removed.
func (f FavoriteSet) Toggle(symbol string) FavoriteSet {
	if symbol == "" {
		return f
	}
	if f.Contains(symbol) {
		return FavoriteSet{symbols: slices.DeleteFunc(slices.Clone(f.symbols), func(s string) bool { return s == symbol })}
	}
	return FavoriteSet{symbols: append(slices.Clone(f.symbols), symbol)}
}

// Len returns the number of symbols.
func (f FavoriteSet) Len() int {
	return len(f.symbols)
}

// Symbols returns a copy of the symbols in insertion order.
func (f FavoriteSet) Symbols() []string {
	return slices.Clone(f.symbols)
}

// Equal compares membership, ignoring order.
func (f FavoriteSet) Equal(other FavoriteSet) bool {
	if f.Len() != other.Len() {
		return false
	}
	for _, s := range f.symbols {
		if !other.Contains(s) {
			return false
		}
	}
	return true
}

// FavoriteRecorder receives favorite toggles for metrics. Optional.
type FavoriteRecorder interface {
	RecordFavoriteToggle()
}

// FavoritesStore keeps the favorite set in sync with the key-value store.
// Every toggle is written through immediately.
type FavoritesStore struct {
	kv       domain.KeyValueStore
	key      string
	set      FavoriteSet
	recorder FavoriteRecorder
}

// NewFavoritesStore creates a store and loads the persisted set.
func NewFavoritesStore(kv domain.KeyValueStore, key string, recorder FavoriteRecorder) *FavoritesStore {
	if key == "" {
		key = FavoritesKey
	}
	s := &FavoritesStore{kv: kv, key: key, recorder: recorder}
	s.set = s.Load()
	return s
}

// Load reads the persisted set. Missing or malformed values yield an empty set.
func (s *FavoritesStore) Load() FavoriteSet {
	raw, ok := s.kv.GetItem(s.key)
	if !ok {
		return FavoriteSet{}
	}
	var symbols []string
	if err := json.Unmarshal([]byte(raw), &symbols); err != nil {
		slog.Warn("Ignoring malformed favorites", slog.String("key", s.key), slog.Any("error", err))
		return FavoriteSet{}
	}
	return NewFavoriteSet(symbols...)
}

// Persist writes the set under the favorites key.
func (s *FavoritesStore) Persist(set FavoriteSet) error {
	symbols := set.Symbols()
	if symbols == nil {
		symbols = []string{}
	}
	b, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	return s.kv.SetItem(s.key, string(b))
}

// Toggle flips membership of symbol and persists the result.
func (s *FavoritesStore) Toggle(symbol string) FavoriteSet {
	s.set = s.set.Toggle(symbol)
	if s.recorder != nil {
		s.recorder.RecordFavoriteToggle()
	}
	if err := s.Persist(s.set); err != nil {
		slog.Warn("Failed to persist favorites", slog.String("symbol", symbol), slog.Any("error", err))
	}
	return s.set
}

// IsFavorite reports whether symbol is a favorite.
func (s *FavoritesStore) IsFavorite(symbol string) bool {
	return s.set.Contains(symbol)
}

// Set returns the current favorite set.
func (s *FavoritesStore) Set() FavoriteSet {
	return s.set
}
